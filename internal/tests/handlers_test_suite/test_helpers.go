package handlers_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rogerio-castellano/product-catalog/internal/catalog"
	handler "github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/product-catalog/internal/http/router"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	"github.com/rogerio-castellano/product-catalog/internal/metrics"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/query"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var productRepo = repo.NewInMemoryProductRepository()

type readyFlag struct {
	v atomic.Bool
}

func (f *readyFlag) Ready() bool { return f.v.Load() }

func newReady(ready bool) *readyFlag {
	f := &readyFlag{}
	f.v.Store(ready)
	return f
}

type brokenStore struct{}

func (brokenStore) Find(context.Context, query.Plan) ([]models.Product, error) {
	return nil, fmt.Errorf("server selection timeout")
}

func (brokenStore) Count(context.Context, []query.Clause) (int64, error) {
	return 0, fmt.Errorf("server selection timeout")
}

func (brokenStore) Facets(context.Context) (repo.Facets, error) {
	return repo.Facets{}, fmt.Errorf("server selection timeout")
}

func newRouter(products repo.ProductRepository, ready handler.Readiness) http.Handler {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	logg := logger.Nop()
	svc := catalog.NewService(products, logg, m)
	return router.NewRouter(router.Options{
		Server:         handler.NewServer(svc, ready, logg),
		Logger:         logg,
		Requests:       m,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSOrigins:    []string{"*"},
	})
}

func defaultRouter() http.Handler {
	return newRouter(productRepo, newReady(true))
}

func clearAllProducts() {
	productRepo.Clear()
}

// seedPriced adds one Gadgets product per price, in the given order.
func seedPriced(prices ...float64) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range prices {
		productRepo.Add(models.Product{
			ID:          primitive.NewObjectID(),
			ProductName: fmt.Sprintf("Item %02d", i+1),
			Category:    "Gadgets",
			Brand:       "Acme",
			Price:       price,
			CreatedAt:   models.Created(base.Add(time.Duration(i) * time.Hour)),
		})
	}
}

func seedStore() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ProductName: "Wireless Mouse", Category: "Electronics", Brand: "Logi", Price: 25},
		{ProductName: "Gaming Laptop", Category: "Electronics", Brand: "Asus", Price: 1899},
		{ProductName: "4K Monitor", Category: "Electronics", Brand: "Dell", Price: 649},
		{ProductName: "Office Chair", Category: "Furniture", Brand: "Ikea", Price: 199},
		{ProductName: "Standing Desk", Category: "Furniture", Brand: "Ikea", Price: 540},
		{ProductName: "Espresso Machine", Category: "Kitchen", Brand: "Breville", Price: 1000},
		{ProductName: "Mouse Pad (XL)", Category: "Accessories", Brand: "Logi", Price: 19.99},
		{ProductName: "Noise Cancelling Headphones", Category: "Electronics", Brand: "Sony", Price: 499.99},
		{ProductName: "Blender", Category: "Kitchen", Brand: "Vitamix", Price: 450},
		{ProductName: "Smartphone", Category: "Electronics", Brand: "Samsung", Price: 999.99},
	}
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		products[i].CreatedAt = models.Created(base.Add(time.Duration(i) * 24 * time.Hour))
	}
	productRepo.Add(products...)
}

func listProducts(r http.Handler, rawQuery string) *httptest.ResponseRecorder {
	target := "/api/products"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProducts(w *httptest.ResponseRecorder) (handler.ProductsResponse, error) {
	var resp handler.ProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("error decoding response: %w", err)
	}
	return resp, nil
}
