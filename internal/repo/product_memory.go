package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/query"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Insertion order is its natural order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository(products ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{}
	r.Add(products...)
	return r
}

// Add appends products to the collection.
func (r *InMemoryProductRepository) Add(products ...models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, products...)
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
}

func matchesClauses(p models.Product, clauses []query.Clause) bool {
	for _, c := range clauses {
		switch c := c.(type) {
		case query.NameMatches:
			if !strings.Contains(strings.ToLower(p.ProductName), strings.ToLower(c.Substring)) {
				return false
			}
		case query.CategoryEquals:
			if p.Category != c.Category {
				return false
			}
		case query.BrandEquals:
			if p.Brand != c.Brand {
				return false
			}
		case query.PriceInRange:
			if !c.Contains(p.Price) {
				return false
			}
		}
	}
	return true
}

func (r *InMemoryProductRepository) filtered(clauses []query.Clause) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesClauses(p, clauses) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func less(s query.Sort, a, b models.Product) bool {
	var cmp int
	switch s.Field {
	case query.FieldPrice:
		switch {
		case a.Price < b.Price:
			cmp = -1
		case a.Price > b.Price:
			cmp = 1
		}
	case query.FieldCreatedAt:
		cmp = compareCreated(a.CreatedAt, b.CreatedAt)
	}
	return cmp*int(s.Direction) < 0
}

// compareCreated orders a missing timestamp before any present one.
func compareCreated(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func (r *InMemoryProductRepository) Find(_ context.Context, plan query.Plan) ([]models.Product, error) {
	filtered := r.filtered(plan.Clauses)

	if !plan.Sort.IsNatural() {
		sort.SliceStable(filtered, func(i, j int) bool {
			return less(plan.Sort, filtered[i], filtered[j])
		})
	}

	start := clamp(plan.Skip, 0, int64(len(filtered)))
	end := int64(len(filtered))
	if plan.Limit > 0 {
		end = clamp(start+plan.Limit, start, int64(len(filtered)))
	}
	return filtered[start:end], nil
}

func (r *InMemoryProductRepository) Count(_ context.Context, clauses []query.Clause) (int64, error) {
	return int64(len(r.filtered(clauses))), nil
}

func (r *InMemoryProductRepository) Facets(_ context.Context) (Facets, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brands := make([]string, 0, len(r.products))
	categories := make([]string, 0, len(r.products))
	for _, p := range r.products {
		brands = append(brands, p.Brand)
		categories = append(categories, p.Category)
	}
	return Facets{Brands: distinctSorted(brands), Categories: distinctSorted(categories)}, nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
