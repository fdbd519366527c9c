package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *gorm.DB) domainRepo.ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	return translate(conn(ctx, r.db).Omit("Customer").Create(shipment).Error)
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	var shipment entity.Shipment
	err := conn(ctx, r.db).Preload("Customer").First(&shipment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error) {
	var shipment entity.Shipment
	err := conn(ctx, r.db).First(&shipment, "tracking_number = ?", trackingNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	return translate(conn(ctx, r.db).Omit("Customer").Save(shipment).Error)
}

func (r *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Shipment{}, "id = ?", id).Error
}

func (r *shipmentRepository) List(ctx context.Context, filter *domainRepo.ShipmentFilter) ([]entity.Shipment, int64, error) {
	var shipments []entity.Shipment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Shipment{})
	if filter.Search != "" {
		query = query.Where("tracking_number ILIKE ? OR origin ILIKE ? OR destination ILIKE ?",
			like(filter.Search), like(filter.Search), like(filter.Search))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	filter.Pagination.Validate()
	err := query.Preload("Customer").
		Offset(filter.Pagination.Offset()).Limit(filter.Pagination.PerPage).
		Order("created_at DESC").
		Find(&shipments).Error

	return shipments, total, err
}

func (r *shipmentRepository) CountByStatus(ctx context.Context) (map[enum.ShipmentStatus]int64, error) {
	var rows []struct {
		Status enum.ShipmentStatus
		Count  int64
	}
	err := conn(ctx, r.db).Model(&entity.Shipment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.ShipmentStatus]int64, len(enum.ShipmentStatuses))
	for _, s := range enum.ShipmentStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
