package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is a goods category carrying the default price per cubic metre
type Category struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"-"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MarshalJSON renders the price with two fixed decimals
func (c Category) MarshalJSON() ([]byte, error) {
	type Alias Category
	return json.Marshal(&struct {
		Alias
		UnitPrice string `json:"unit_price"`
	}{
		Alias:     Alias(c),
		UnitPrice: c.UnitPrice.StringFixed(2),
	})
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Category) TableName() string {
	return "goods_categories"
}
