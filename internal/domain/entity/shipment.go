package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shipment is a consignment moving between two places for a customer
type Shipment struct {
	ID                uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TrackingNumber    string              `gorm:"size:100;uniqueIndex;not null" json:"tracking_number"`
	CustomerID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	Origin            string              `gorm:"size:200;not null" json:"origin"`
	Destination       string              `gorm:"size:200;not null" json:"destination"`
	Description       string              `gorm:"type:text" json:"description"`
	Weight            decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"-"`
	Dimensions        string              `gorm:"size:100" json:"dimensions"`
	Status            enum.ShipmentStatus `gorm:"size:20;not null;index" json:"status"`
	ShippedDate       *time.Time          `json:"shipped_date"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery"`
	ActualDelivery    *time.Time          `json:"actual_delivery"`
	CreatedByID       *uuid.UUID          `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
}

// MarshalJSON renders the weight with two fixed decimals, or null
func (s Shipment) MarshalJSON() ([]byte, error) {
	type Alias Shipment
	var weight *string
	if s.Weight.Valid {
		w := s.Weight.Decimal.StringFixed(2)
		weight = &w
	}
	return json.Marshal(&struct {
		Alias
		Weight *string `json:"weight"`
	}{
		Alias:  Alias(s),
		Weight: weight,
	})
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Shipment) TableName() string {
	return "shipments"
}
