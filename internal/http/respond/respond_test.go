package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/product-catalog/internal/apperror"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestErrorHidesInternalCause(t *testing.T) {
	w := httptest.NewRecorder()
	Error(context.Background(), logger.Nop(), w, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decode(t, w)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Nil(t, body.Details)
}

func TestErrorValidationIncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := apperror.New(apperror.CodeValidation, "limit must be a positive integer").
		WithDetails(map[string]any{"field": "limit"})
	Error(context.Background(), nil, w, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "limit must be a positive integer", body.Error)
	assert.Equal(t, "limit", body.Details["field"])
}

func TestErrorNotReady(t *testing.T) {
	w := httptest.NewRecorder()
	Error(context.Background(), nil, w, apperror.New(apperror.CodeNotReady, "store starting"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Service Unavailable", decode(t, w).Error)
}
