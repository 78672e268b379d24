package repo

import (
	"regexp"

	"github.com/rogerio-castellano/product-catalog/internal/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompileFilter turns clauses into a MongoDB filter document. Search text is
// escaped so it always matches literally.
func CompileFilter(clauses []query.Clause) bson.D {
	filter := bson.D{}
	for _, c := range clauses {
		switch c := c.(type) {
		case query.NameMatches:
			filter = append(filter, bson.E{Key: "productName", Value: primitive.Regex{
				Pattern: regexp.QuoteMeta(c.Substring),
				Options: "i",
			}})
		case query.CategoryEquals:
			filter = append(filter, bson.E{Key: "category", Value: c.Category})
		case query.BrandEquals:
			filter = append(filter, bson.E{Key: "brand", Value: c.Brand})
		case query.PriceInRange:
			bounds := bson.D{}
			if c.Min != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min})
			}
			if c.Max != nil {
				bounds = append(bounds, bson.E{Key: "$lt", Value: *c.Max})
			}
			if len(bounds) > 0 {
				filter = append(filter, bson.E{Key: "price", Value: bounds})
			}
		}
	}
	return filter
}

// CompileSort returns the sort document, or nil for the store's natural order.
func CompileSort(s query.Sort) bson.D {
	if s.IsNatural() {
		return nil
	}
	return bson.D{{Key: s.Field, Value: int(s.Direction)}}
}

// facetsPipeline groups the whole collection into one document holding every
// distinct brand and category.
func facetsPipeline() bson.A {
	return bson.A{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "brands", Value: bson.D{{Key: "$addToSet", Value: "$brand"}}},
			{Key: "categories", Value: bson.D{{Key: "$addToSet", Value: "$category"}}},
		}}},
	}
}
