package dtos

import (
	"time"

	"unisale-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	UserID     string `json:"userId"`
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Pincode    string `json:"pincode" binding:"required"`
	HostelRoom string `json:"hostelRoom"`
}

type AddressResponse struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
	HostelRoom string `json:"hostel_room"`
}

type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          models.OrderStatus  `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	DeliveryAddress AddressResponse     `json:"delivery_address"`
	Items           []OrderItemResponse `json:"items"`
}

// NewOrderResponse flattens a preloaded order. A missing address renders as empty strings.
func NewOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		Items:       make([]OrderItemResponse, 0, len(o.Items)),
	}

	if a := o.DeliveryAddress; a != nil {
		resp.DeliveryAddress = AddressResponse{
			FullName:   a.FullName,
			Phone:      a.Phone,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			Pincode:    a.Pincode,
			HostelRoom: a.HostelRoom,
		}
	}

	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
		if it.Product != nil {
			item.Name = it.Product.Name
			item.ImageURL = it.Product.ImageURL
		}
		resp.Items = append(resp.Items, item)
	}

	return resp
}

func NewOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
