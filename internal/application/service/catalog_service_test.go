package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/pagination"
)

func TestCategoryRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "Furniture", "10.00")

	tests := []struct {
		name  string
		input CreateCategoryInput
		want  int
	}{
		{"duplicate name", CreateCategoryInput{Name: "Furniture", UnitPrice: dec("1")}, http.StatusConflict},
		{"negative price", CreateCategoryInput{Name: "Cheap", UnitPrice: dec("-1")}, http.StatusUnprocessableEntity},
		{"sub-cent price", CreateCategoryInput{Name: "Odd", UnitPrice: dec("1.005")}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.categorySvc.CreateCategory(ctx, &tt.input)
			if got := statusOf(err); got != tt.want {
				t.Errorf("got status %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListActiveCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "Furniture", "10.00")
	inactive := false
	if _, err := f.categorySvc.CreateCategory(ctx, &CreateCategoryInput{Name: "Retired", UnitPrice: dec("1"), IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}

	all, err := f.categorySvc.ListCategories(ctx, pagination.DefaultPagination(), "", false)
	if err != nil {
		t.Fatal(err)
	}
	active, err := f.categorySvc.ListCategories(ctx, pagination.DefaultPagination(), "", true)
	if err != nil {
		t.Fatal(err)
	}
	if all.Pagination.Total != 2 || active.Pagination.Total != 1 {
		t.Errorf("got %d total and %d active, want 2 and 1", all.Pagination.Total, active.Pagination.Total)
	}
}

func TestShipmentRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	first, err := f.shipmentSvc.CreateShipment(ctx, &CreateShipmentInput{TrackingNumber: "TRK-1", CustomerID: acme.ID})
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != enum.ShipmentStatusPending {
		t.Errorf("got status %s, want pending", first.Status)
	}
	if first.Customer == nil || first.Customer.ID != acme.ID {
		t.Error("customer was not loaded")
	}

	tests := []struct {
		name  string
		input CreateShipmentInput
		want  int
	}{
		{"duplicate tracking number", CreateShipmentInput{TrackingNumber: "TRK-1", CustomerID: acme.ID}, http.StatusConflict},
		{"unknown customer", CreateShipmentInput{TrackingNumber: "TRK-2", CustomerID: uuid.New()}, http.StatusUnprocessableEntity},
		{"unknown status", CreateShipmentInput{TrackingNumber: "TRK-3", CustomerID: acme.ID, Status: "lost"}, http.StatusUnprocessableEntity},
		{"negative weight", CreateShipmentInput{TrackingNumber: "TRK-4", CustomerID: acme.ID, Weight: decPtr("-2")}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.shipmentSvc.CreateShipment(ctx, &tt.input)
			if got := statusOf(err); got != tt.want {
				t.Errorf("got status %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListShipmentsByStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	statuses := []enum.ShipmentStatus{enum.ShipmentStatusPending, enum.ShipmentStatusInTransit, enum.ShipmentStatusInTransit}
	for i, st := range statuses {
		if _, err := f.shipmentSvc.CreateShipment(ctx, &CreateShipmentInput{
			TrackingNumber: "TRK-" + pad3(i),
			CustomerID:     acme.ID,
			Status:         st,
		}); err != nil {
			t.Fatal(err)
		}
	}

	inTransit := enum.ShipmentStatusInTransit
	got, err := f.shipmentSvc.ListShipments(ctx, &repository.ShipmentFilter{Status: &inTransit})
	if err != nil {
		t.Fatal(err)
	}
	if got.Pagination.Total != 2 {
		t.Errorf("got %d shipments, want 2", got.Pagination.Total)
	}

	bogus := enum.ShipmentStatus("lost")
	if _, err := f.shipmentSvc.ListShipments(ctx, &repository.ShipmentFilter{Status: &bogus}); statusOf(err) != http.StatusBadRequest {
		t.Errorf("got %v, want bad request", err)
	}
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dashboard := NewDashboardService(f.staffRepo, f.customers, f.shipments, f.receipts)
	acme := f.customer(t, "Acme")

	if _, err := f.staffSvc.CreateStaff(ctx, &CreateStaffInput{Username: "jdoe"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.shipmentSvc.CreateShipment(ctx, &CreateShipmentInput{TrackingNumber: "TRK-1", CustomerID: acme.ID}); err != nil {
		t.Fatal(err)
	}
	for _, price := range []string{"10.10", "0.90"} {
		if _, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
			CustomerID: acme.ID,
			Items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr(price)}},
		}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := dashboard.GetDashboardStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ActiveStaff != 1 || stats.Customers != 1 || stats.Shipments != 1 || stats.Receipts != 2 {
		t.Errorf("got %+v", stats)
	}
	if stats.ShipmentsByState[enum.ShipmentStatusPending] != 1 || stats.ShipmentsByState[enum.ShipmentStatusDelivered] != 0 {
		t.Errorf("got by status %v", stats.ShipmentsByState)
	}
	if !stats.ReceiptsTotal.Equal(dec("11")) {
		t.Errorf("got total %s, want 11", stats.ReceiptsTotal)
	}
}
