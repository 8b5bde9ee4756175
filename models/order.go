package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

type Order struct {
	ID              uuid.UUID        `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:char(36);not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus      `gorm:"size:20;default:pending" json:"status"`
	Items           []OrderItem      `gorm:"foreignKey:OrderID" json:"items"`
	DeliveryAddress *DeliveryAddress `gorm:"foreignKey:OrderID" json:"delivery_address,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:char(36);not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // price at time of order
	CreatedAt time.Time       `json:"created_at"`
}

type DeliveryAddress struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex" json:"order_id"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Phone      string    `gorm:"size:20;not null" json:"phone"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	City       string    `gorm:"size:100;not null" json:"city"`
	State      string    `gorm:"size:100;not null" json:"state"`
	Pincode    string    `gorm:"size:10;not null" json:"pincode"`
	HostelRoom string    `gorm:"size:50" json:"hostel_room"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (a *DeliveryAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Total sums price times quantity over the given items.
func Total(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// AllModels lists every model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&ProductImage{},
		&WishlistItem{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&DeliveryAddress{},
	}
}
