package handlers

import "github.com/rogerio-castellano/product-catalog/internal/models"

type ProductsResponse struct {
	Products   []models.Product `json:"products"`
	TotalPages int64            `json:"totalPages"`
	Brands     []string         `json:"brands"`
	Categories []string         `json:"categories"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
