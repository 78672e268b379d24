package query

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Sort is a single-field ordering. The zero value leaves ordering to the store.
type Sort struct {
	Field     string
	Direction Direction
}

func (s Sort) IsNatural() bool {
	return s.Field == ""
}

const (
	FieldPrice     = "price"
	FieldCreatedAt = "createdAt"
)

var sortTokens = map[string]Sort{
	"LowToHigh":   {Field: FieldPrice, Direction: Ascending},
	"HighToLow":   {Field: FieldPrice, Direction: Descending},
	"newestFirst": {Field: FieldCreatedAt, Direction: Descending},
	// accepted for clients of the first API revision
	"priceLowToHigh": {Field: FieldPrice, Direction: Ascending},
	"priceHighToLow": {Field: FieldPrice, Direction: Descending},
}

// ParseSort maps a sort token to its ordering. Unknown tokens give natural order.
func ParseSort(token string) Sort {
	return sortTokens[token]
}
