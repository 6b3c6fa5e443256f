// Package catalog holds the product domain types and the REST client for the
// remote storefront service. Products are decoded verbatim from the API and
// treated as immutable once fetched; the product id is the identity.
package catalog

import (
	"errors"
	"sort"
)

// ErrProductNotFound is returned when a product id is not in the loaded catalog.
var ErrProductNotFound = errors.New("product not found")

// Rating is the aggregate review score attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a single catalog entry as served by the remote API.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Catalog is the full set of products known to the client.
type Catalog []Product

// FindByID returns the product with the given id.
func (c Catalog) FindByID(id int) (Product, error) {
	for _, p := range c {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Trending returns the top n products ranked by rating, descending.
// The sort is stable so ties keep their catalog order. The receiver is
// not modified.
func (c Catalog) Trending(n int) []Product {
	ranked := make([]Product, len(c))
	copy(ranked, c)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating.Rate > ranked[j].Rating.Rate
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
