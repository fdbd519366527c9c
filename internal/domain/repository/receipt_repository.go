package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines the interface for receipt header operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetForUpdate loads the header and locks it until the surrounding
	// transaction ends, serialising concurrent edits of one receipt.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetWithItems loads the header, its customer and its items in position order.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ReceiptFilter) ([]entity.Receipt, int64, error)
	Count(ctx context.Context) (int64, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}

// ReceiptFilter narrows receipt listings
type ReceiptFilter struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CustomerID    *uuid.UUID
	PaymentStatus *enum.PaymentStatus
	From          *time.Time
	To            *time.Time
}

// ReceiptItemRepository defines the interface for receipt line operations
type ReceiptItemRepository interface {
	Create(ctx context.Context, item *entity.ReceiptItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptItem, error)
	Update(ctx context.Context, item *entity.ReceiptItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByReceipt(ctx context.Context, receiptID uuid.UUID) error
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error)
	// NextPosition is one past the highest position used on the receipt
	NextPosition(ctx context.Context, receiptID uuid.UUID) (int, error)
	// SumTotals aggregates TotalPrice over the receipt's current items
	SumTotals(ctx context.Context, receiptID uuid.UUID) (decimal.Decimal, error)
	// DetachCategory clears the category reference on every item pointing at
	// categoryID and reports how many items changed. Prices are untouched.
	DetachCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// DetachShipment is DetachCategory for shipment references.
	DetachShipment(ctx context.Context, shipmentID uuid.UUID) (int64, error)
}
