package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 8
	MaxLimit     = 100
)

// Request is the validated form of the product listing query string.
type Request struct {
	Search     string
	Category   string
	Brand      string
	PriceRange PriceRange
	Sort       Sort
	Page       int
	Limit      int
}

// Plan is a request translated into filter, ordering and skip/limit.
type Plan struct {
	Clauses []Clause
	Sort    Sort
	Skip    int64
	Limit   int64
}

// Parse builds a Request from query values. Absent values are tolerated, as are
// unknown priceRange and sort tokens. Pagination values must be positive integers.
func Parse(values url.Values) (Request, error) {
	page, err := parsePositive(values, "page", DefaultPage, 0)
	if err != nil {
		return Request{}, err
	}
	limit, err := parsePositive(values, "limit", DefaultLimit, MaxLimit)
	if err != nil {
		return Request{}, err
	}
	if maxPage := math.MaxInt64/int64(limit) + 1; int64(page) > maxPage {
		return Request{}, apperror.New(apperror.CodeValidation, fmt.Sprintf("page must not exceed %d", maxPage)).
			WithDetails(map[string]any{"field": "page", "value": values.Get("page"), "max": maxPage})
	}

	return Request{
		Search:     values.Get("search"),
		Category:   values.Get("category"),
		Brand:      values.Get("brand"),
		PriceRange: PriceRange(values.Get("priceRange")),
		Sort:       ParseSort(values.Get("sort")),
		Page:       page,
		Limit:      limit,
	}, nil
}

func parsePositive(values url.Values, key string, fallback, max int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperror.New(apperror.CodeValidation, fmt.Sprintf("%s must be a positive integer", key)).
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if max > 0 && n > max {
		return 0, apperror.New(apperror.CodeValidation, fmt.Sprintf("%s must not exceed %d", key, max)).
			WithDetails(map[string]any{"field": key, "value": raw, "max": max})
	}
	return n, nil
}

// Clauses returns the filter clauses in a stable order: name, category, brand, price.
func (r Request) Clauses() []Clause {
	var clauses []Clause
	if r.Search != "" {
		clauses = append(clauses, NameMatches{Substring: r.Search})
	}
	if r.Category != "" {
		clauses = append(clauses, CategoryEquals{Category: r.Category})
	}
	if r.Brand != "" {
		clauses = append(clauses, BrandEquals{Brand: r.Brand})
	}
	if bucket, ok := r.PriceRange.Bucket(); ok {
		clauses = append(clauses, bucket)
	}
	return clauses
}

func (r Request) Skip() int64 {
	return int64(r.Page-1) * int64(r.Limit)
}

func (r Request) Plan() Plan {
	return Plan{
		Clauses: r.Clauses(),
		Sort:    r.Sort,
		Skip:    r.Skip(),
		Limit:   int64(r.Limit),
	}
}

// TotalPages is ceil(count/limit).
func TotalPages(count, limit int64) int64 {
	if limit <= 0 || count <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
