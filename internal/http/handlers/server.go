package handlers

import (
	"context"

	"github.com/rogerio-castellano/product-catalog/internal/catalog"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	"github.com/rogerio-castellano/product-catalog/internal/query"
)

// Browser lists products for a parsed request.
type Browser interface {
	Browse(ctx context.Context, req query.Request) (catalog.Result, error)
}

type Readiness interface {
	Ready() bool
}

// Server carries the dependencies shared by every handler.
type Server struct {
	catalog Browser
	ready   Readiness
	logg    *logger.Logger
}

func NewServer(catalog Browser, ready Readiness, logg *logger.Logger) *Server {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Server{catalog: catalog, ready: ready, logg: logg}
}

func (s *Server) Ready() bool {
	return s.ready == nil || s.ready.Ready()
}
