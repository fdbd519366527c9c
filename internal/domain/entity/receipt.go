package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is a billing document. TotalAmount always equals the sum of the
// current items' TotalPrice; it is recomputed in the same transaction as
// every item change.
type Receipt struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber   string             `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	IssueDate       time.Time          `gorm:"type:date;not null" json:"issue_date"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"-"`
	PaymentStatus   enum.PaymentStatus `gorm:"size:20;not null;index" json:"payment_status"`
	PaymentMethod   string             `gorm:"size:50" json:"payment_method"`
	Notes           string             `gorm:"type:text" json:"notes"`
	LoadingDate     *time.Time         `gorm:"type:date" json:"loading_date"`
	ETA             *time.Time         `gorm:"type:date;column:eta" json:"eta"`
	ContainerNumber string             `gorm:"size:100" json:"container_number"`
	CreatedByID     *uuid.UUID         `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	Customer *Customer     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Items    []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
}

// MarshalJSON renders the total with two fixed decimals. Items are left out
// when they were not loaded (nil) and rendered as [] when loaded but empty.
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	var items *[]ReceiptItem
	if r.Items != nil {
		items = &r.Items
	}
	return json.Marshal(&struct {
		Alias
		TotalAmount string         `json:"total_amount"`
		Items       *[]ReceiptItem `json:"items,omitempty"`
	}{
		Alias:       Alias(r),
		TotalAmount: r.TotalAmount.StringFixed(2),
		Items:       items,
	})
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is one priced line of a receipt. UnitPrice is a snapshot taken
// when the line was priced; Category and Shipment are weak references that
// are cleared when their target is deleted.
type ReceiptItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	ShipmentID  *uuid.UUID      `gorm:"type:uuid;index" json:"shipment_id"`
	Description string          `gorm:"type:text" json:"description"`
	CBM         decimal.Decimal `gorm:"column:cbm;type:decimal(10,3);not null" json:"-"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"-"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Shipment *Shipment `gorm:"foreignKey:ShipmentID;constraint:OnDelete:SET NULL" json:"shipment,omitempty"`
}

// MarshalJSON renders volume with three decimals and money with two
func (i ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		CBM        string `json:"cbm"`
		UnitPrice  string `json:"unit_price"`
		TotalPrice string `json:"total_price"`
	}{
		Alias:      Alias(i),
		CBM:        i.CBM.StringFixed(3),
		UnitPrice:  i.UnitPrice.StringFixed(2),
		TotalPrice: i.TotalPrice.StringFixed(2),
	})
}

func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (ReceiptItem) TableName() string {
	return "receipt_items"
}
