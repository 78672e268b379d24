package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/http/respond"
	"github.com/rogerio-castellano/product-catalog/internal/query"
)

// ListProductsHandler godoc
// @Summary Search, filter, sort and paginate products
// @Tags products
// @Produce json
// @Param search query string false "Case-insensitive substring of the product name"
// @Param category query string false "Exact category"
// @Param brand query string false "Exact brand"
// @Param priceRange query string false "Price bucket" Enums(low, medium, high)
// @Param sort query string false "Ordering" Enums(LowToHigh, HighToLow, newestFirst)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param limit query int false "Page size" default(8) maximum(100)
// @Success 200 {object} ProductsResponse
// @Failure 400 {object} respond.ErrorBody "Invalid pagination"
// @Failure 500 {object} respond.ErrorBody "Internal Server Error"
// @Failure 503 {object} respond.ErrorBody "Store not ready"
// @Router /api/products [get]
func (s *Server) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := query.Parse(r.URL.Query())
	if err != nil {
		respond.Error(r.Context(), s.logg, w, err)
		return
	}

	result, err := s.catalog.Browse(r.Context(), req)
	if err != nil {
		respond.Error(r.Context(), s.logg, w, err)
		return
	}

	resp := ProductsResponse{
		Products:   result.Products,
		TotalPages: result.TotalPages,
		Brands:     result.Brands,
		Categories: result.Categories,
	}
	if err := respond.JSON(w, http.StatusOK, resp); err != nil {
		s.logg.Error(r.Context(), "failed to encode response", err)
	}
}
