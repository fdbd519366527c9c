package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/pricing"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ShipmentService handles shipment operations
type ShipmentService struct {
	shipmentRepo repository.ShipmentRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ReceiptItemRepository
	transactor   repository.Transactor
	log          logrus.FieldLogger
}

// NewShipmentService creates a new shipment service
func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ReceiptItemRepository,
	transactor repository.Transactor,
	log logrus.FieldLogger,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		transactor:   transactor,
		log:          log,
	}
}

// CreateShipmentInput represents the create shipment input
type CreateShipmentInput struct {
	TrackingNumber    string
	CustomerID        uuid.UUID
	Origin            string
	Destination       string
	Description       string
	Weight            *decimal.Decimal
	Dimensions        string
	Status            enum.ShipmentStatus
	ShippedDate       *time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	CreatedByID       *uuid.UUID
}

// CreateShipment creates a new shipment
func (s *ShipmentService) CreateShipment(ctx context.Context, input *CreateShipmentInput) (*entity.Shipment, error) {
	status := input.Status
	if status == "" {
		status = enum.ShipmentStatusPending
	}
	if errs := validateShipment(status, input.Weight); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.requireCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	shipment := &entity.Shipment{
		TrackingNumber:    input.TrackingNumber,
		CustomerID:        input.CustomerID,
		Origin:            input.Origin,
		Destination:       input.Destination,
		Description:       input.Description,
		Dimensions:        input.Dimensions,
		Status:            status,
		ShippedDate:       input.ShippedDate,
		EstimatedDelivery: input.EstimatedDelivery,
		ActualDelivery:    input.ActualDelivery,
		CreatedByID:       input.CreatedByID,
	}
	if input.Weight != nil {
		shipment.Weight = decimal.NewNullDecimal(*input.Weight)
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, shipmentWriteError(err)
	}
	return s.GetShipment(ctx, shipment.ID)
}

// GetShipment retrieves a shipment by ID
func (s *ShipmentService) GetShipment(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, apperror.NewNotFoundError("Shipment")
	}
	return shipment, nil
}

// ListShipments lists shipments
func (s *ShipmentService) ListShipments(ctx context.Context, filter *repository.ShipmentFilter) (*pagination.PaginatedResult[entity.Shipment], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid shipment status")
	}

	shipments, total, err := s.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(shipments, pag), nil
}

// UpdateShipmentInput represents the update shipment input
type UpdateShipmentInput struct {
	ID                uuid.UUID
	TrackingNumber    *string
	CustomerID        *uuid.UUID
	Origin            *string
	Destination       *string
	Description       *string
	Weight            *decimal.Decimal
	Dimensions        *string
	Status            *enum.ShipmentStatus
	ShippedDate       *time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
}

// UpdateShipment updates a shipment
func (s *ShipmentService) UpdateShipment(ctx context.Context, input *UpdateShipmentInput) (*entity.Shipment, error) {
	shipment, err := s.GetShipment(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	status := shipment.Status
	if input.Status != nil {
		status = *input.Status
	}
	if errs := validateShipment(status, input.Weight); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if input.CustomerID != nil && *input.CustomerID != shipment.CustomerID {
		if err := s.requireCustomer(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
		shipment.CustomerID = *input.CustomerID
	}
	if input.TrackingNumber != nil {
		shipment.TrackingNumber = *input.TrackingNumber
	}
	if input.Origin != nil {
		shipment.Origin = *input.Origin
	}
	if input.Destination != nil {
		shipment.Destination = *input.Destination
	}
	if input.Description != nil {
		shipment.Description = *input.Description
	}
	if input.Weight != nil {
		shipment.Weight = decimal.NewNullDecimal(*input.Weight)
	}
	if input.Dimensions != nil {
		shipment.Dimensions = *input.Dimensions
	}
	if input.ShippedDate != nil {
		shipment.ShippedDate = input.ShippedDate
	}
	if input.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = input.EstimatedDelivery
	}
	if input.ActualDelivery != nil {
		shipment.ActualDelivery = input.ActualDelivery
	}
	shipment.Status = status
	shipment.Customer = nil

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, shipmentWriteError(err)
	}
	return s.GetShipment(ctx, shipment.ID)
}

// DeleteShipment removes a shipment. Items referencing it lose the link but
// keep their prices.
func (s *ShipmentService) DeleteShipment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetShipment(ctx, id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		detached, err := s.itemRepo.DetachShipment(ctx, id)
		if err != nil {
			return err
		}
		if err := s.shipmentRepo.Delete(ctx, id); err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"shipment_id": id, "detached_items": detached}).Info("shipment deleted")
		return nil
	})
}

func (s *ShipmentService) requireCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewIntegrityError([]apperror.FieldError{{Field: "customer_id", Message: "Customer not found"}})
	}
	return nil
}

func validateShipment(status enum.ShipmentStatus, weight *decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if !status.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "is not a valid shipment status"})
	}
	if weight != nil {
		if fe := pricing.CheckMoney("weight", *weight); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func shipmentWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperror.NewConflictError("Shipment with this tracking number already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return apperror.NewIntegrityError([]apperror.FieldError{{Field: "customer_id", Message: "Customer not found"}})
	}
	return err
}
