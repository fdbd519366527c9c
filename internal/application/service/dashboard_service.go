package service

import (
	"context"

	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates back-office counters
type DashboardService struct {
	staffRepo    repository.StaffRepository
	customerRepo repository.CustomerRepository
	shipmentRepo repository.ShipmentRepository
	receiptRepo  repository.ReceiptRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	staffRepo repository.StaffRepository,
	customerRepo repository.CustomerRepository,
	shipmentRepo repository.ShipmentRepository,
	receiptRepo repository.ReceiptRepository,
) *DashboardService {
	return &DashboardService{
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
		shipmentRepo: shipmentRepo,
		receiptRepo:  receiptRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	ActiveStaff      int64                         `json:"active_staff"`
	Customers        int64                         `json:"customers"`
	Shipments        int64                         `json:"shipments"`
	ShipmentsByState map[enum.ShipmentStatus]int64 `json:"shipments_by_status"`
	Receipts         int64                         `json:"receipts"`
	ReceiptsTotal    decimal.Decimal               `json:"receipts_total"`
}

// GetDashboardStats returns current totals
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	activeStaff, err := s.staffRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.shipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	receipts, err := s.receiptRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.receiptRepo.SumTotals(ctx)
	if err != nil {
		return nil, err
	}

	var shipments int64
	for _, n := range byStatus {
		shipments += n
	}

	return &DashboardStats{
		ActiveStaff:      activeStaff,
		Customers:        customers,
		Shipments:        shipments,
		ShipmentsByState: byStatus,
		Receipts:         receipts,
		ReceiptsTotal:    total.Round(2),
	}, nil
}
