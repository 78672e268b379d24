package catalog

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/query"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"golang.org/x/sync/errgroup"
)

// Result is one page of a product listing plus its metadata.
type Result struct {
	Products   []models.Product
	TotalPages int64
	Brands     []string
	Categories []string
}

// QueryObserver is notified about every store round trip.
type QueryObserver interface {
	ObserveQuery(op string, err error)
}

type Service struct {
	products repo.ProductRepository
	logg     *logger.Logger
	observer QueryObserver
}

func NewService(products repo.ProductRepository, logg *logger.Logger, observer QueryObserver) *Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{products: products, logg: logg, observer: observer}
}

// Browse runs the matching count, the page fetch and the facet summary concurrently.
// Facets always describe the whole collection, whatever the filter.
func (s *Service) Browse(ctx context.Context, req query.Request) (Result, error) {
	plan := req.Plan()

	var (
		count    int64
		products []models.Product
		facets   repo.Facets
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.products.Count(gctx, plan.Clauses)
		s.observe("count", err)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.Find(gctx, plan)
		s.observe("find", err)
		return err
	})
	g.Go(func() error {
		var err error
		facets, err = s.products.Facets(gctx)
		s.observe("facets", err)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repo.ErrStoreNotReady) {
			return Result{}, apperror.Wrap(apperror.CodeNotReady, err, "product store not ready")
		}
		s.logg.Error(ctx, "catalog.browse_failed", err)
		return Result{}, apperror.Wrap(apperror.CodeInternal, err, "browse products")
	}

	if products == nil {
		products = []models.Product{}
	}
	return Result{
		Products:   products,
		TotalPages: query.TotalPages(count, plan.Limit),
		Brands:     nonNil(facets.Brands),
		Categories: nonNil(facets.Categories),
	}, nil
}

func (s *Service) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveQuery(op, err)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
