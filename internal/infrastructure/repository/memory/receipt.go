package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

type receiptRepository struct {
	s *Store
}

// NewReceiptRepository creates a receipt repository backed by s
func NewReceiptRepository(s *Store) domainRepo.ReceiptRepository {
	return &receiptRepository{s: s}
}

func (r *receiptRepository) check(receipt *entity.Receipt) error {
	if _, ok := r.s.customers[receipt.CustomerID]; !ok {
		return domainRepo.ErrMissingReference
	}
	for id, other := range r.s.receipts {
		if id != receipt.ID && other.ReceiptNumber == receipt.ReceiptNumber {
			return domainRepo.ErrDuplicateKey
		}
	}
	return nil
}

func (r *receiptRepository) put(receipt *entity.Receipt) {
	stamp(&receipt.CreatedAt, &receipt.UpdatedAt)
	stored := *receipt
	stored.Customer = nil
	stored.Items = nil
	r.s.receipts[receipt.ID] = stored
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	defer r.s.lock(ctx)()

	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if _, ok := r.s.receipts[receipt.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.check(receipt); err != nil {
		return err
	}
	r.put(receipt)
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	defer r.s.lock(ctx)()

	rc, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

// GetForUpdate needs no row lock here: a transaction already owns the store.
func (r *receiptRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	defer r.s.lock(ctx)()

	rc, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	if c, ok := r.s.customers[rc.CustomerID]; ok && !c.DeletedAt.Valid {
		rc.Customer = &c
	}

	rc.Items = []entity.ReceiptItem{}
	for _, item := range r.s.itemsOf(id) {
		if item.CategoryID != nil {
			if c, ok := r.s.categories[*item.CategoryID]; ok {
				item.Category = &c
			}
		}
		if item.ShipmentID != nil {
			if sh, ok := r.s.shipments[*item.ShipmentID]; ok {
				item.Shipment = &sh
			}
		}
		rc.Items = append(rc.Items, item)
	}
	return &rc, nil
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	defer r.s.lock(ctx)()

	if err := r.check(receipt); err != nil {
		return err
	}
	r.put(receipt)
	return nil
}

func (r *receiptRepository) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	defer r.s.lock(ctx)()

	rc, ok := r.s.receipts[id]
	if !ok {
		return nil
	}
	rc.TotalAmount = total
	r.put(&rc)
	return nil
}

// Delete removes the receipt together with its items.
func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	for itemID, item := range r.s.items {
		if item.ReceiptID == id {
			delete(r.s.items, itemID)
		}
	}
	delete(r.s.receipts, id)
	return nil
}

func (r *receiptRepository) List(ctx context.Context, filter *domainRepo.ReceiptFilter) ([]entity.Receipt, int64, error) {
	defer r.s.lock(ctx)()

	var out []entity.Receipt
	for _, rc := range r.s.receipts {
		if filter.Search != "" && !contains(rc.ReceiptNumber, filter.Search) && !contains(rc.ContainerNumber, filter.Search) {
			continue
		}
		if filter.CustomerID != nil && rc.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.PaymentStatus != nil && rc.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		if filter.From != nil && rc.IssueDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rc.IssueDate.After(*filter.To) {
			continue
		}
		if c, ok := r.s.customers[rc.CustomerID]; ok && !c.DeletedAt.Valid {
			rc.Customer = &c
		}
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.After(out[j].IssueDate)
		}
		return out[i].ReceiptNumber > out[j].ReceiptNumber
	})

	return pagination.Slice(out, filter.Pagination), int64(len(out)), nil
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()

	return int64(len(r.s.receipts)), nil
}

func (r *receiptRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()

	sum := decimal.Zero
	for _, rc := range r.s.receipts {
		sum = sum.Add(rc.TotalAmount)
	}
	return sum, nil
}

// itemsOf returns the receipt's items in position order. Callers hold the lock.
func (s *Store) itemsOf(receiptID uuid.UUID) []entity.ReceiptItem {
	var out []entity.ReceiptItem
	for _, item := range s.items {
		if item.ReceiptID == receiptID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type receiptItemRepository struct {
	s *Store
}

// NewReceiptItemRepository creates a receipt item repository backed by s
func NewReceiptItemRepository(s *Store) domainRepo.ReceiptItemRepository {
	return &receiptItemRepository{s: s}
}

func (r *receiptItemRepository) check(item *entity.ReceiptItem) error {
	if _, ok := r.s.receipts[item.ReceiptID]; !ok {
		return domainRepo.ErrMissingReference
	}
	if item.CategoryID != nil {
		if _, ok := r.s.categories[*item.CategoryID]; !ok {
			return domainRepo.ErrMissingReference
		}
	}
	if item.ShipmentID != nil {
		if _, ok := r.s.shipments[*item.ShipmentID]; !ok {
			return domainRepo.ErrMissingReference
		}
	}
	return nil
}

func (r *receiptItemRepository) put(item *entity.ReceiptItem) {
	stamp(&item.CreatedAt, &item.UpdatedAt)
	stored := *item
	stored.Category = nil
	stored.Shipment = nil
	r.s.items[item.ID] = stored
}

func (r *receiptItemRepository) Create(ctx context.Context, item *entity.ReceiptItem) error {
	defer r.s.lock(ctx)()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if _, ok := r.s.items[item.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	if err := r.check(item); err != nil {
		return err
	}
	r.put(item)
	return nil
}

func (r *receiptItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptItem, error) {
	defer r.s.lock(ctx)()

	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *receiptItemRepository) Update(ctx context.Context, item *entity.ReceiptItem) error {
	defer r.s.lock(ctx)()

	if err := r.check(item); err != nil {
		return err
	}
	r.put(item)
	return nil
}

func (r *receiptItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	delete(r.s.items, id)
	return nil
}

func (r *receiptItemRepository) DeleteByReceipt(ctx context.Context, receiptID uuid.UUID) error {
	defer r.s.lock(ctx)()

	for id, item := range r.s.items {
		if item.ReceiptID == receiptID {
			delete(r.s.items, id)
		}
	}
	return nil
}

func (r *receiptItemRepository) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error) {
	defer r.s.lock(ctx)()

	return r.s.itemsOf(receiptID), nil
}

func (r *receiptItemRepository) NextPosition(ctx context.Context, receiptID uuid.UUID) (int, error) {
	defer r.s.lock(ctx)()

	next := 1
	for _, item := range r.s.items {
		if item.ReceiptID == receiptID && item.Position >= next {
			next = item.Position + 1
		}
	}
	return next, nil
}

func (r *receiptItemRepository) SumTotals(ctx context.Context, receiptID uuid.UUID) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()

	sum := decimal.Zero
	for _, item := range r.s.items {
		if item.ReceiptID == receiptID {
			sum = sum.Add(item.TotalPrice)
		}
	}
	return sum, nil
}

func (r *receiptItemRepository) DetachCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for id, item := range r.s.items {
		if item.CategoryID != nil && *item.CategoryID == categoryID {
			item.CategoryID = nil
			r.s.items[id] = item
			n++
		}
	}
	return n, nil
}

func (r *receiptItemRepository) DetachShipment(ctx context.Context, shipmentID uuid.UUID) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for id, item := range r.s.items {
		if item.ShipmentID != nil && *item.ShipmentID == shipmentID {
			item.ShipmentID = nil
			r.s.items[id] = item
			n++
		}
	}
	return n, nil
}
