package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

// ShipmentRepository defines the interface for shipment data operations
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ShipmentFilter) ([]entity.Shipment, int64, error)
	CountByStatus(ctx context.Context) (map[enum.ShipmentStatus]int64, error)
}

// ShipmentFilter narrows shipment listings
type ShipmentFilter struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ShipmentStatus
	CustomerID *uuid.UUID
}
