package repo

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type staticSource struct {
	coll *mongo.Collection
}

func (s staticSource) Collection() (*mongo.Collection, bool) {
	return s.coll, s.coll != nil
}

func namespace(coll *mongo.Collection) string {
	return coll.Database().Name() + "." + coll.Name()
}

func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find decodes page", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "productName", Value: "Galaxy Phone"},
				{Key: "category", Value: "Electronics"},
				{Key: "brand", Value: "Samsung"},
				{Key: "price", Value: 799.0},
			},
		))

		plan := planFor(mt.T, url.Values{"category": {"Electronics"}, "sort": {"HighToLow"}})
		got, err := r.Find(context.Background(), plan)
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, id, got[0].ID)
		assert.Equal(mt, "Galaxy Phone", got[0].ProductName)
		assert.Equal(mt, 799.0, got[0].Price)
		assert.Nil(mt, got[0].CreatedAt)
	})

	mt.Run("find returns empty slice", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch))

		got, err := r.Find(context.Background(), planFor(mt.T, url.Values{}))
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("find surfaces store errors", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		_, err := r.Find(context.Background(), planFor(mt.T, url.Values{}))
		require.Error(mt, err)
	})

	mt.Run("count", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(10)}},
		))

		n, err := r.Count(context.Background(), planFor(mt.T, url.Values{"priceRange": {"low"}}).Clauses)
		require.NoError(mt, err)
		assert.Equal(mt, int64(10), n)
	})

	mt.Run("find sends filter, sort and page window", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch))
		mt.ClearEvents()

		plan := planFor(mt.T, url.Values{
			"search":     {"phone (x)"},
			"category":   {"Electronics"},
			"priceRange": {"medium"},
			"sort":       {"HighToLow"},
			"page":       {"2"},
			"limit":      {"3"},
		})
		_, err := r.Find(context.Background(), plan)
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		cmd := started.Command

		assert.Equal(mt, mt.Coll.Name(), cmd.Lookup("find").StringValue())
		assert.Equal(mt, int64(3), cmd.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(3), cmd.Lookup("limit").AsInt64())
		assert.Equal(mt, int64(-1), cmd.Lookup("sort", "price").AsInt64())

		pattern, options := cmd.Lookup("filter", "productName").Regex()
		assert.Equal(mt, `phone \(x\)`, pattern)
		assert.Equal(mt, "i", options)
		assert.Equal(mt, "Electronics", cmd.Lookup("filter", "category").StringValue())
		assert.Equal(mt, 500.0, cmd.Lookup("filter", "price", "$gte").Double())
		assert.Equal(mt, 1000.0, cmd.Lookup("filter", "price", "$lt").Double())
	})

	mt.Run("find in natural order sends no sort", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch))
		mt.ClearEvents()

		_, err := r.Find(context.Background(), planFor(mt.T, url.Values{}))
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		_, hasSort := cmd.LookupErr("sort")
		assert.Error(mt, hasSort)
		assert.Equal(mt, int64(0), cmd.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(8), cmd.Lookup("limit").AsInt64())
		filter, err := cmd.Lookup("filter").Document().Elements()
		require.NoError(mt, err)
		assert.Empty(mt, filter)
	})

	mt.Run("count matches the filter", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(4)}},
		))
		mt.ClearEvents()

		clauses := planFor(mt.T, url.Values{"brand": {"Samsung"}, "priceRange": {"high"}}).Clauses
		_, err := r.Count(context.Background(), clauses)
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)

		stages, err := started.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.NotEmpty(mt, stages)
		match := stages[0].Document().Lookup("$match")
		assert.Equal(mt, "Samsung", match.Document().Lookup("brand").StringValue())
		assert.Equal(mt, 1000.0, match.Document().Lookup("price", "$gte").Double())
		_, hasUpper := match.Document().LookupErr("price", "$lt")
		assert.Error(mt, hasUpper)
	})

	mt.Run("facets group the whole collection", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch))
		mt.ClearEvents()

		_, err := r.Facets(context.Background())
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)

		stages, err := started.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, stages, 1)
		group := stages[0].Document().Lookup("$group").Document()
		assert.Equal(mt, bson.TypeNull, group.Lookup("_id").Type)
		assert.Equal(mt, "$brand", group.Lookup("brands", "$addToSet").StringValue())
		assert.Equal(mt, "$category", group.Lookup("categories", "$addToSet").StringValue())
	})

	mt.Run("facets are sorted and skip empty values", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: nil},
				{Key: "brands", Value: bson.A{"Samsung", "", "Anker"}},
				{Key: "categories", Value: bson.A{"Electronics", "Accessories"}},
			},
		))

		f, err := r.Facets(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"Anker", "Samsung"}, f.Brands)
		assert.Equal(mt, []string{"Accessories", "Electronics"}, f.Categories)
	})

	mt.Run("facets on empty collection", func(mt *mtest.T) {
		r := NewMongoProductRepository(staticSource{coll: mt.Coll}, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt.Coll), mtest.FirstBatch))

		f, err := r.Facets(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{}, f.Brands)
		assert.Equal(mt, []string{}, f.Categories)
	})
}

func TestMongoProductRepositoryNotReady(t *testing.T) {
	r := NewMongoProductRepository(staticSource{}, 0)

	_, err := r.Find(context.Background(), planFor(t, url.Values{}))
	assert.ErrorIs(t, err, ErrStoreNotReady)

	_, err = r.Count(context.Background(), nil)
	assert.ErrorIs(t, err, ErrStoreNotReady)

	_, err = r.Facets(context.Background())
	assert.ErrorIs(t, err, ErrStoreNotReady)
}
