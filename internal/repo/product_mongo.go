package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultQueryTimeout = 5 * time.Second

// CollectionSource hands out the products collection once it is available.
type CollectionSource interface {
	Collection() (*mongo.Collection, bool)
}

type MongoProductRepository struct {
	source  CollectionSource
	timeout time.Duration
}

func NewMongoProductRepository(source CollectionSource, timeout time.Duration) *MongoProductRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &MongoProductRepository{source: source, timeout: timeout}
}

func (r *MongoProductRepository) collection() (*mongo.Collection, error) {
	coll, ok := r.source.Collection()
	if !ok {
		return nil, ErrStoreNotReady
	}
	return coll, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, plan query.Plan) ([]models.Product, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSkip(plan.Skip).SetLimit(plan.Limit)
	if s := CompileSort(plan.Sort); s != nil {
		opts.SetSort(s)
	}

	cursor, err := coll.Find(ctx, CompileFilter(plan.Clauses), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *MongoProductRepository) Count(ctx context.Context, clauses []query.Clause) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, CompileFilter(clauses))
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoProductRepository) Facets(ctx context.Context) (Facets, error) {
	coll, err := r.collection()
	if err != nil {
		return Facets{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := coll.Aggregate(ctx, facetsPipeline())
	if err != nil {
		return Facets{}, fmt.Errorf("aggregate facets: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Brands     []string `bson:"brands"`
		Categories []string `bson:"categories"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return Facets{}, fmt.Errorf("decode facets: %w", err)
	}

	facets := Facets{Brands: []string{}, Categories: []string{}}
	if len(groups) > 0 {
		facets.Brands = distinctSorted(groups[0].Brands)
		facets.Categories = distinctSorted(groups[0].Categories)
	}
	return facets, nil
}
