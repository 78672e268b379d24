package middleware

import (
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
	"github.com/rogerio-castellano/product-catalog/internal/http/respond"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
)

type Readiness interface {
	Ready() bool
}

// RequireReady answers 503 until the product store is connected.
func RequireReady(ready Readiness, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ready != nil && !ready.Ready() {
				respond.Error(r.Context(), logg, w, apperror.New(apperror.CodeNotReady, "product store not ready"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
