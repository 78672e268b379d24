package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/http/respond"
)

// RootHandler godoc
// @Summary Liveness check
// @Tags health
// @Produce plain
// @Success 200 {string} string "Server is running"
// @Router / [get]
func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is running"))
}

// ReadyHandler godoc
// @Summary Readiness of the product store connection
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if !s.Ready() {
		_ = respond.JSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "starting"})
		return
	}
	_ = respond.JSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}
