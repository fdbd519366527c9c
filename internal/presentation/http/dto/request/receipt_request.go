package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptItemRequest is one line of a receipt. UnitPrice may be omitted
// when CategoryID is given; the category's price is then copied.
type ReceiptItemRequest struct {
	Description string           `json:"description" binding:"max=500"`
	CBM         decimal.Decimal  `json:"cbm"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ShipmentID  *uuid.UUID       `json:"shipment_id"`
}

// CreateReceiptRequest represents a receipt creation request
type CreateReceiptRequest struct {
	CustomerID      uuid.UUID            `json:"customer_id" binding:"required"`
	IssueDate       *string              `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentStatus   string               `json:"payment_status" binding:"omitempty,oneof=pending paid partial cancelled"`
	PaymentMethod   string               `json:"payment_method" binding:"max=50"`
	Notes           string               `json:"notes"`
	LoadingDate     *string              `json:"loading_date" binding:"omitempty,datetime=2006-01-02"`
	ETA             *string              `json:"eta" binding:"omitempty,datetime=2006-01-02"`
	ContainerNumber string               `json:"container_number" binding:"max=100"`
	Items           []ReceiptItemRequest `json:"items" binding:"dive"`
}

// UpdateReceiptRequest represents a receipt header update. The number and
// total cannot be set.
type UpdateReceiptRequest struct {
	CustomerID      *uuid.UUID `json:"customer_id"`
	IssueDate       *string    `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentStatus   *string    `json:"payment_status" binding:"omitempty,oneof=pending paid partial cancelled"`
	PaymentMethod   *string    `json:"payment_method" binding:"omitempty,max=50"`
	Notes           *string    `json:"notes"`
	LoadingDate     *string    `json:"loading_date" binding:"omitempty,datetime=2006-01-02"`
	ETA             *string    `json:"eta" binding:"omitempty,datetime=2006-01-02"`
	ContainerNumber *string    `json:"container_number" binding:"omitempty,max=100"`
}

// UpdateReceiptItemRequest represents a partial item update
type UpdateReceiptItemRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=500"`
	CBM         *decimal.Decimal `json:"cbm"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ShipmentID  *uuid.UUID       `json:"shipment_id"`
}

// ReceiptFilterRequest represents receipt list parameters
type ReceiptFilterRequest struct {
	Search        string `form:"search"`
	CustomerID    string `form:"customer_id"`
	PaymentStatus string `form:"payment_status"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page          string `form:"page"`
	PerPage       string `form:"per_page"`
}
