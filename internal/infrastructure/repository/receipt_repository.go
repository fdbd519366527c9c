package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(receipt).Error)
}

func (r *receiptRepository) get(db *gorm.DB, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := db.First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.get(conn(ctx, r.db), id)
}

func (r *receiptRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.get(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	db := conn(ctx, r.db).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Items.Category").
		Preload("Items.Shipment")
	return r.get(db, id)
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(receipt).Error)
}

func (r *receiptRepository) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return conn(ctx, r.db).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Update("total_amount", total).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, filter *domainRepo.ReceiptFilter) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := conn(ctx, r.db).Model(&entity.Receipt{})
	if filter.Search != "" {
		query = query.Where("receipt_number ILIKE ? OR container_number ILIKE ?", like(filter.Search), like(filter.Search))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.From != nil {
		query = query.Where("issue_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("issue_date <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	filter.Pagination.Validate()
	err := query.Preload("Customer").
		Offset(filter.Pagination.Offset()).Limit(filter.Pagination.PerPage).
		Order("issue_date DESC, receipt_number DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&entity.Receipt{}).Count(&n).Error
	return n, err
}

func (r *receiptRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(ctx, r.db).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&sum)
	return sum, err
}

type receiptItemRepository struct {
	db *gorm.DB
}

// NewReceiptItemRepository creates a new receipt item repository
func NewReceiptItemRepository(db *gorm.DB) domainRepo.ReceiptItemRepository {
	return &receiptItemRepository{db: db}
}

func (r *receiptItemRepository) Create(ctx context.Context, item *entity.ReceiptItem) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(item).Error)
}

func (r *receiptItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptItem, error) {
	var item entity.ReceiptItem
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *receiptItemRepository) Update(ctx context.Context, item *entity.ReceiptItem) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(item).Error)
}

func (r *receiptItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.ReceiptItem{}, "id = ?", id).Error
}

func (r *receiptItemRepository) DeleteByReceipt(ctx context.Context, receiptID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.ReceiptItem{}, "receipt_id = ?", receiptID).Error
}

func (r *receiptItemRepository) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error) {
	var items []entity.ReceiptItem
	err := conn(ctx, r.db).
		Where("receipt_id = ?", receiptID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *receiptItemRepository) NextPosition(ctx context.Context, receiptID uuid.UUID) (int, error) {
	var next int
	err := conn(ctx, r.db).Model(&entity.ReceiptItem{}).
		Select("COALESCE(MAX(position), 0) + 1").
		Where("receipt_id = ?", receiptID).
		Row().Scan(&next)
	return next, err
}

func (r *receiptItemRepository) SumTotals(ctx context.Context, receiptID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(ctx, r.db).Model(&entity.ReceiptItem{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("receipt_id = ?", receiptID).
		Row().Scan(&sum)
	return sum, err
}

func (r *receiptItemRepository) DetachCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	res := conn(ctx, r.db).Model(&entity.ReceiptItem{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil)
	return res.RowsAffected, res.Error
}

func (r *receiptItemRepository) DetachShipment(ctx context.Context, shipmentID uuid.UUID) (int64, error) {
	res := conn(ctx, r.db).Model(&entity.ReceiptItem{}).
		Where("shipment_id = ?", shipmentID).
		Update("shipment_id", nil)
	return res.RowsAffected, res.Error
}
