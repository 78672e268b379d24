package middleware

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
	"github.com/rogerio-castellano/product-catalog/internal/http/respond"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					respond.Error(r.Context(), logg, w, apperror.Wrap(apperror.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
