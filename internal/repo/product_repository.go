package repo

import (
	"context"
	"errors"
	"sort"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/query"
)

// ErrStoreNotReady is returned while the products collection is not connected yet.
var ErrStoreNotReady = errors.New("product store not ready")

// Facets are the distinct brand and category values of the whole collection.
type Facets struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

// ProductRepository defines the read operations the catalog needs.
type ProductRepository interface {
	// Find returns the page of products matching the plan, honoring its sort, skip and limit.
	Find(ctx context.Context, plan query.Plan) ([]models.Product, error)
	// Count returns how many products match all clauses.
	Count(ctx context.Context, clauses []query.Clause) (int64, error)
	// Facets ignores any filter and summarizes the entire collection.
	Facets(ctx context.Context) (Facets, error)
}

// distinctSorted drops empty values and duplicates and sorts the rest.
func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
