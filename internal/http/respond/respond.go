package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// JSON takes a response status code and arbitrary data and writes a json response to the client
func JSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// Error maps err to its status and public message. Causes are logged, never sent.
func Error(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := apperror.As(err)
	if typed == nil {
		typed = apperror.Wrap(apperror.CodeInternal, err, "unexpected error")
	}
	meta := apperror.MetadataFor(typed.Code())

	body := ErrorBody{Error: typed.Public()}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	if logg != nil && meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(logg.WithField(ctx, "error_code", string(typed.Code())), "request.error", err)
	}

	if werr := JSON(w, meta.HTTPStatus, body); werr != nil && logg != nil {
		logg.Error(ctx, "response.write_failed", werr)
	}
}
