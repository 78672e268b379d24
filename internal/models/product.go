package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog document. Field names follow the persisted layout
// of the products collection and are exposed unchanged over JSON.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductName string             `bson:"productName" json:"productName"`
	Category    string             `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
	Price       float64            `bson:"price" json:"price"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Created returns a pointer suitable for CreatedAt.
func Created(t time.Time) *time.Time {
	return &t
}
