package query

// Clause is one independently optional condition of a product filter.
// A filter is the conjunction of its clauses; an empty list matches everything.
type Clause interface {
	clause()
}

// NameMatches is a case-insensitive literal substring match on productName.
type NameMatches struct {
	Substring string
}

// CategoryEquals is an exact match on category.
type CategoryEquals struct {
	Category string
}

// BrandEquals is an exact match on brand.
type BrandEquals struct {
	Brand string
}

// PriceInRange bounds price to [Min, Max). A nil bound is open.
type PriceInRange struct {
	Min *float64
	Max *float64
}

func (NameMatches) clause()    {}
func (CategoryEquals) clause() {}
func (BrandEquals) clause()    {}
func (PriceInRange) clause()   {}

// Contains reports whether price falls inside the range.
func (r PriceInRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price >= *r.Max {
		return false
	}
	return true
}

type PriceRange string

const (
	PriceLow    PriceRange = "low"
	PriceMedium PriceRange = "medium"
	PriceHigh   PriceRange = "high"
)

const (
	MediumPriceFloor = 500.0
	HighPriceFloor   = 1000.0
)

// Bucket returns the price clause for a named range. Unknown names yield false.
func (p PriceRange) Bucket() (PriceInRange, bool) {
	switch p {
	case PriceLow:
		return PriceInRange{Max: float64Ptr(MediumPriceFloor)}, true
	case PriceMedium:
		return PriceInRange{Min: float64Ptr(MediumPriceFloor), Max: float64Ptr(HighPriceFloor)}, true
	case PriceHigh:
		return PriceInRange{Min: float64Ptr(HighPriceFloor)}, true
	}
	return PriceInRange{}, false
}

func float64Ptr(v float64) *float64 {
	return &v
}
