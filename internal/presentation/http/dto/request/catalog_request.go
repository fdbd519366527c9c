package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a goods category creation request
type CreateCategoryRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateCategoryRequest represents a goods category update request
type UpdateCategoryRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

// CreateShipmentRequest represents a shipment creation request
type CreateShipmentRequest struct {
	TrackingNumber    string           `json:"tracking_number" binding:"required,max=100"`
	CustomerID        uuid.UUID        `json:"customer_id" binding:"required"`
	Origin            string           `json:"origin" binding:"required,max=200"`
	Destination       string           `json:"destination" binding:"required,max=200"`
	Description       string           `json:"description"`
	Weight            *decimal.Decimal `json:"weight"`
	Dimensions        string           `json:"dimensions" binding:"max=100"`
	Status            string           `json:"status" binding:"omitempty,oneof=pending in_transit delivered cancelled"`
	ShippedDate       *string          `json:"shipped_date" binding:"omitempty,datetime=2006-01-02"`
	EstimatedDelivery *string          `json:"estimated_delivery" binding:"omitempty,datetime=2006-01-02"`
	ActualDelivery    *string          `json:"actual_delivery" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateShipmentRequest represents a shipment update request
type UpdateShipmentRequest struct {
	TrackingNumber    *string          `json:"tracking_number" binding:"omitempty,min=1,max=100"`
	CustomerID        *uuid.UUID       `json:"customer_id"`
	Origin            *string          `json:"origin" binding:"omitempty,min=1,max=200"`
	Destination       *string          `json:"destination" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Weight            *decimal.Decimal `json:"weight"`
	Dimensions        *string          `json:"dimensions" binding:"omitempty,max=100"`
	Status            *string          `json:"status" binding:"omitempty,oneof=pending in_transit delivered cancelled"`
	ShippedDate       *string          `json:"shipped_date" binding:"omitempty,datetime=2006-01-02"`
	EstimatedDelivery *string          `json:"estimated_delivery" binding:"omitempty,datetime=2006-01-02"`
	ActualDelivery    *string          `json:"actual_delivery" binding:"omitempty,datetime=2006-01-02"`
}

// ShipmentFilterRequest represents shipment list parameters
type ShipmentFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	Page       string `form:"page"`
	PerPage    string `form:"per_page"`
}
