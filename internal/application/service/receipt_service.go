package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	"github.com/sangkips/logistics-api/internal/domain/pricing"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReceiptService assembles receipts and their items. Every operation that
// touches items ends by recomputing the receipt total from the stored items
// inside the same transaction.
type ReceiptService struct {
	receiptRepo  repository.ReceiptRepository
	itemRepo     repository.ReceiptItemRepository
	customerRepo repository.CustomerRepository
	categoryRepo repository.CategoryRepository
	shipmentRepo repository.ShipmentRepository
	sequences    *SequenceService
	transactor   repository.Transactor
	loc          *time.Location
	now          func() time.Time
	log          logrus.FieldLogger
}

// NewReceiptService creates a new receipt service. loc decides which
// calendar day a receipt number belongs to.
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	itemRepo repository.ReceiptItemRepository,
	customerRepo repository.CustomerRepository,
	categoryRepo repository.CategoryRepository,
	shipmentRepo repository.ShipmentRepository,
	sequences *SequenceService,
	transactor repository.Transactor,
	loc *time.Location,
	log logrus.FieldLogger,
) *ReceiptService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		categoryRepo: categoryRepo,
		shipmentRepo: shipmentRepo,
		sequences:    sequences,
		transactor:   transactor,
		loc:          loc,
		now:          time.Now,
		log:          log,
	}
}

// WithClock replaces the time source used for receipt numbers and default issue dates.
func (s *ReceiptService) WithClock(now func() time.Time) *ReceiptService {
	s.now = now
	return s
}

// ReceiptItemInput represents one line of a receipt
type ReceiptItemInput struct {
	Description string
	CBM         decimal.Decimal
	UnitPrice   *decimal.Decimal
	CategoryID  *uuid.UUID
	ShipmentID  *uuid.UUID
}

func (in ReceiptItemInput) pricing() pricing.Input {
	return pricing.Input{CBM: in.CBM, UnitPrice: in.UnitPrice}
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	CustomerID      uuid.UUID
	IssueDate       *time.Time
	PaymentStatus   enum.PaymentStatus
	PaymentMethod   string
	Notes           string
	LoadingDate     *time.Time
	ETA             *time.Time
	ContainerNumber string
	CreatedByID     *uuid.UUID
	Items           []ReceiptItemInput
}

// CreateReceipt persists a receipt and all of its items as one unit. The
// receipt number is drawn from today's sequence inside the same
// transaction, so a rejected item leaves neither rows nor a used number.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	var fieldErrs []apperror.FieldError
	status := input.PaymentStatus
	if status == "" {
		status = enum.PaymentStatusPending
	} else if !status.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "payment_status", Message: "is not a valid payment status"})
	}
	for i, item := range input.Items {
		errs := pricing.Validate(item.pricing(), item.CategoryID != nil)
		fieldErrs = append(fieldErrs, apperror.Prefix(itemField(i), errs)...)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	now := s.now().In(s.loc)
	issueDate := dateOf(now)
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}

	var receiptID uuid.UUID
	err := s.sequences.Within(ctx, identifier.ReceiptDay(now), func(ctx context.Context, number string) error {
		customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewIntegrityError([]apperror.FieldError{{Field: "customer_id", Message: "Customer not found"}})
		}

		receipt := &entity.Receipt{
			ReceiptNumber:   number,
			CustomerID:      input.CustomerID,
			IssueDate:       issueDate,
			TotalAmount:     decimal.Zero,
			PaymentStatus:   status,
			PaymentMethod:   input.PaymentMethod,
			Notes:           input.Notes,
			LoadingDate:     input.LoadingDate,
			ETA:             input.ETA,
			ContainerNumber: input.ContainerNumber,
			CreatedByID:     input.CreatedByID,
		}
		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}

		var integrityErrs []apperror.FieldError
		for i, in := range input.Items {
			item, errs, err := s.buildItem(ctx, receipt.ID, i+1, in)
			if errors.Is(err, pricing.ErrTotalTooLarge) {
				return totalTooLarge(itemField(i))
			}
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				integrityErrs = append(integrityErrs, apperror.Prefix(itemField(i), errs)...)
				continue
			}
			if err := s.itemRepo.Create(ctx, item); err != nil {
				if errors.Is(err, repository.ErrMissingReference) {
					return apperror.NewIntegrityError([]apperror.FieldError{{Field: itemField(i), Message: "References a record that no longer exists"}})
				}
				return err
			}
		}
		if len(integrityErrs) > 0 {
			return apperror.NewIntegrityError(integrityErrs)
		}

		if err := s.recalculate(ctx, receipt.ID); err != nil {
			return err
		}
		receiptID = receipt.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("receipt_id", receiptID).Info("receipt created")
	return s.GetReceipt(ctx, receiptID)
}

// GetReceipt retrieves a receipt with its customer and items
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.Items == nil {
		receipt.Items = []entity.ReceiptItem{}
	}
	return receipt, nil
}

// ListReceipts lists receipt headers
func (s *ReceiptService) ListReceipts(ctx context.Context, filter *repository.ReceiptFilter) (*pagination.PaginatedResult[entity.Receipt], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	receipts, total, err := s.receiptRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// UpdateReceiptInput represents the update receipt header input
type UpdateReceiptInput struct {
	ID              uuid.UUID
	CustomerID      *uuid.UUID
	IssueDate       *time.Time
	PaymentStatus   *enum.PaymentStatus
	PaymentMethod   *string
	Notes           *string
	LoadingDate     *time.Time
	ETA             *time.Time
	ContainerNumber *string
}

// UpdateReceipt changes header fields. The number and total are never touched.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, input *UpdateReceiptInput) (*entity.Receipt, error) {
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "payment_status", Message: "is not a valid payment status"}})
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		receipt, err := s.lockReceipt(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.CustomerID != nil && *input.CustomerID != receipt.CustomerID {
			customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewIntegrityError([]apperror.FieldError{{Field: "customer_id", Message: "Customer not found"}})
			}
			receipt.CustomerID = *input.CustomerID
		}
		if input.IssueDate != nil {
			receipt.IssueDate = *input.IssueDate
		}
		if input.PaymentStatus != nil {
			receipt.PaymentStatus = *input.PaymentStatus
		}
		if input.PaymentMethod != nil {
			receipt.PaymentMethod = *input.PaymentMethod
		}
		if input.Notes != nil {
			receipt.Notes = *input.Notes
		}
		if input.LoadingDate != nil {
			receipt.LoadingDate = input.LoadingDate
		}
		if input.ETA != nil {
			receipt.ETA = input.ETA
		}
		if input.ContainerNumber != nil {
			receipt.ContainerNumber = *input.ContainerNumber
		}

		return s.receiptRepo.Update(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	return s.GetReceipt(ctx, input.ID)
}

// DeleteReceipt removes a receipt and its items
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockReceipt(ctx, id); err != nil {
			return err
		}
		if err := s.itemRepo.DeleteByReceipt(ctx, id); err != nil {
			return err
		}
		return s.receiptRepo.Delete(ctx, id)
	})
}

// AddItem appends one item to an existing receipt and recomputes its total.
func (s *ReceiptService) AddItem(ctx context.Context, receiptID uuid.UUID, input ReceiptItemInput) (*entity.ReceiptItem, error) {
	if errs := pricing.Validate(input.pricing(), input.CategoryID != nil); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	var item *entity.ReceiptItem
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockReceipt(ctx, receiptID); err != nil {
			return err
		}

		position, err := s.itemRepo.NextPosition(ctx, receiptID)
		if err != nil {
			return err
		}

		built, errs, err := s.buildItem(ctx, receiptID, position, input)
		if errors.Is(err, pricing.ErrTotalTooLarge) {
			return totalTooLarge("")
		}
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return apperror.NewIntegrityError(errs)
		}
		if err := s.itemRepo.Create(ctx, built); err != nil {
			return referenceError(err)
		}

		item = built
		return s.recalculate(ctx, receiptID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput represents a partial item update
type UpdateItemInput struct {
	Description *string
	CBM         *decimal.Decimal
	UnitPrice   *decimal.Decimal
	CategoryID  *uuid.UUID
	ShipmentID  *uuid.UUID
}

// UpdateItem changes one item and reprices it. An explicit unit price wins;
// moving to another category takes that category's current price; otherwise
// the stored snapshot is kept. The receipt total is recomputed afterwards.
func (s *ReceiptService) UpdateItem(ctx context.Context, receiptID, itemID uuid.UUID, input UpdateItemInput) (*entity.ReceiptItem, error) {
	var fieldErrs []apperror.FieldError
	if input.CBM != nil {
		if fe := pricing.CheckCBM(*input.CBM); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}
	if input.UnitPrice != nil {
		if fe := pricing.CheckMoney("unit_price", *input.UnitPrice); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	var item *entity.ReceiptItem
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockReceipt(ctx, receiptID); err != nil {
			return err
		}

		current, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if current == nil || current.ReceiptID != receiptID {
			return apperror.NewNotFoundError("Receipt item")
		}

		if input.Description != nil {
			current.Description = *input.Description
		}
		if input.CBM != nil {
			current.CBM = *input.CBM
		}

		var integrityErrs []apperror.FieldError
		var categoryPrice *decimal.Decimal
		if input.CategoryID != nil && (current.CategoryID == nil || *current.CategoryID != *input.CategoryID) {
			category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				integrityErrs = append(integrityErrs, apperror.FieldError{Field: "category_id", Message: "Category not found"})
			} else {
				price := category.UnitPrice
				categoryPrice = &price
				current.CategoryID = &category.ID
			}
		}
		if input.ShipmentID != nil {
			shipment, err := s.shipmentRepo.GetByID(ctx, *input.ShipmentID)
			if err != nil {
				return err
			}
			if shipment == nil {
				integrityErrs = append(integrityErrs, apperror.FieldError{Field: "shipment_id", Message: "Shipment not found"})
			} else {
				current.ShipmentID = &shipment.ID
			}
		}
		if len(integrityErrs) > 0 {
			return apperror.NewIntegrityError(integrityErrs)
		}

		unit := current.UnitPrice
		switch {
		case input.UnitPrice != nil:
			unit = *input.UnitPrice
		case categoryPrice != nil:
			unit = *categoryPrice
		}
		current.UnitPrice = unit
		current.TotalPrice = pricing.Total(current.CBM, unit)
		if fe := pricing.CheckTotal(current.TotalPrice); fe != nil {
			return apperror.NewValidationError([]apperror.FieldError{*fe})
		}

		if err := s.itemRepo.Update(ctx, current); err != nil {
			return referenceError(err)
		}

		item = current
		return s.recalculate(ctx, receiptID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one item and recomputes the receipt total.
func (s *ReceiptService) RemoveItem(ctx context.Context, receiptID, itemID uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockReceipt(ctx, receiptID); err != nil {
			return err
		}

		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.ReceiptID != receiptID {
			return apperror.NewNotFoundError("Receipt item")
		}

		if err := s.itemRepo.Delete(ctx, itemID); err != nil {
			return err
		}
		return s.recalculate(ctx, receiptID)
	})
}

// lockReceipt loads the header with a row lock so item edits on one
// receipt run one after another.
func (s *ReceiptService) lockReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// buildItem resolves references and prices one line. Missing references are
// reported as field errors relative to the item.
func (s *ReceiptService) buildItem(ctx context.Context, receiptID uuid.UUID, position int, in ReceiptItemInput) (*entity.ReceiptItem, []apperror.FieldError, error) {
	var errs []apperror.FieldError
	var categoryPrice *decimal.Decimal

	if in.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, nil, err
		}
		if category == nil {
			errs = append(errs, apperror.FieldError{Field: "category_id", Message: "Category not found"})
		} else {
			price := category.UnitPrice
			categoryPrice = &price
		}
	}
	if in.ShipmentID != nil {
		shipment, err := s.shipmentRepo.GetByID(ctx, *in.ShipmentID)
		if err != nil {
			return nil, nil, err
		}
		if shipment == nil {
			errs = append(errs, apperror.FieldError{Field: "shipment_id", Message: "Shipment not found"})
		}
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	quote, err := pricing.Price(in.pricing(), categoryPrice)
	if errors.Is(err, pricing.ErrNoPriceSource) {
		return nil, []apperror.FieldError{{Field: "unit_price", Message: "Either unit_price or category is required"}}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return &entity.ReceiptItem{
		ReceiptID:   receiptID,
		Position:    position,
		CategoryID:  in.CategoryID,
		ShipmentID:  in.ShipmentID,
		Description: in.Description,
		CBM:         in.CBM,
		UnitPrice:   quote.UnitPrice,
		TotalPrice:  quote.TotalPrice,
	}, nil, nil
}

// totalTooLarge reports a line whose cbm × unit price overflows total_price.
func totalTooLarge(prefix string) error {
	fe := pricing.CheckTotal(pricing.MoneyLimit)
	return apperror.NewValidationError(apperror.Prefix(prefix, []apperror.FieldError{*fe}))
}

// recalculate stores the sum of the receipt's current item totals.
func (s *ReceiptService) recalculate(ctx context.Context, receiptID uuid.UUID) error {
	total, err := s.itemRepo.SumTotals(ctx, receiptID)
	if err != nil {
		return fmt.Errorf("sum receipt items: %w", err)
	}
	total = total.Round(pricing.MoneyPlaces)
	if fe := pricing.CheckReceiptTotal(total); fe != nil {
		return apperror.NewValidationError([]apperror.FieldError{*fe})
	}
	return s.receiptRepo.UpdateTotal(ctx, receiptID, total)
}

func referenceError(err error) error {
	if errors.Is(err, repository.ErrMissingReference) {
		return apperror.NewIntegrityError([]apperror.FieldError{{Field: "item", Message: "References a record that no longer exists"}})
	}
	return err
}

func itemField(i int) string {
	return fmt.Sprintf("items[%d]", i)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
