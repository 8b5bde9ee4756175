package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Sort keys accepted by the product listing.
const (
	SortNewest    = "newest"
	SortLowToHigh = "low-to-high"
	SortHighToLow = "high-to-low"
	CategoryAll   = "All"
)

type Product struct {
	ID            uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        uuid.UUID           `gorm:"type:char(36);not null;index" json:"user_id"`
	Seller        *User               `gorm:"foreignKey:UserID" json:"seller,omitempty"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	Description   string              `gorm:"type:text" json:"description"`
	Category      string              `gorm:"size:100;index" json:"category"`
	State         string              `gorm:"size:50" json:"state"`
	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL      string              `gorm:"size:512" json:"image_url"`
	OriginalPrice decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"original_price"`
	MonthsUsed    *int                `json:"months_used"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Images        []ProductImage      `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
