package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartAddRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type CartRemoveRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" binding:"required"`
}

// CartLine is one cart row joined with its product and the product's seller.
type CartLine struct {
	CartID      uuid.UUID       `json:"cart_id"`
	Quantity    int             `json:"quantity"`
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	SellerName  string          `json:"seller_name"`
}
