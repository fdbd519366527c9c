package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/identifier"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	tx := NewTransactor(s)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := customers.Create(ctx, &entity.Customer{CompanyName: "Acme"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}

	n, _ := customers.Count(ctx)
	if n != 0 {
		t.Errorf("got %d customers after rollback, want 0", n)
	}
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	tx := NewTransactor(s)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return customers.Create(ctx, &entity.Customer{CompanyName: "Inner"})
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	n, _ := customers.Count(ctx)
	if n != 0 {
		t.Errorf("got %d customers, want 0", n)
	}
}

func TestUniqueCustomerCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)

	if err := customers.Create(ctx, &entity.Customer{CompanyName: "A", CustomerCode: strPtr("CUST001")}); err != nil {
		t.Fatal(err)
	}
	err := customers.Create(ctx, &entity.Customer{CompanyName: "B", CustomerCode: strPtr("CUST001")})
	if !errors.Is(err, domainRepo.ErrDuplicateKey) {
		t.Errorf("got %v, want %v", err, domainRepo.ErrDuplicateKey)
	}

	// customers without a code never collide
	for i := 0; i < 2; i++ {
		if err := customers.Create(ctx, &entity.Customer{CompanyName: "Walk-in"}); err != nil {
			t.Errorf("create without code: %v", err)
		}
	}
}

func TestCodesIncludeSoftDeleted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	sequences := NewSequenceRepository(s)

	c := &entity.Customer{CompanyName: "Gone", CustomerCode: strPtr("CUST004")}
	if err := customers.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := customers.Delete(ctx, c.ID); err != nil {
		t.Fatal(err)
	}

	codes, err := sequences.Codes(ctx, identifier.KindCustomer, "CUST")
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) != 1 || codes[0] != "CUST004" {
		t.Errorf("got %v, want [CUST004]", codes)
	}
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()
	sequences := NewSequenceRepository(NewStore())

	tests := []struct {
		floor int64
		want  int64
	}{
		{0, 1},
		{0, 2},
		{7, 8},
		{3, 9},
	}
	for _, tt := range tests {
		got, err := sequences.Advance(ctx, "receipt:RCP-20240501-", tt.floor)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Advance(floor=%d) = %d, want %d", tt.floor, got, tt.want)
		}
	}
}

func TestCategoryDeleteDetachesItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	categories := NewCategoryRepository(s)
	receipts := NewReceiptRepository(s)
	items := NewReceiptItemRepository(s)

	customer := &entity.Customer{CompanyName: "Acme"}
	category := &entity.Category{Name: "Furniture", UnitPrice: decimal.NewFromInt(50)}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatal(err)
	}
	if err := categories.Create(ctx, category); err != nil {
		t.Fatal(err)
	}
	receipt := &entity.Receipt{ReceiptNumber: "RCP-20240501-001", CustomerID: customer.ID}
	if err := receipts.Create(ctx, receipt); err != nil {
		t.Fatal(err)
	}
	item := &entity.ReceiptItem{
		ReceiptID:  receipt.ID,
		CategoryID: &category.ID,
		CBM:        decimal.RequireFromString("1.5"),
		UnitPrice:  decimal.NewFromInt(50),
		TotalPrice: decimal.RequireFromString("75"),
	}
	if err := items.Create(ctx, item); err != nil {
		t.Fatal(err)
	}

	if err := categories.Delete(ctx, category.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := items.GetByID(ctx, item.ID)
	if got.CategoryID != nil {
		t.Errorf("got category %v, want nil", got.CategoryID)
	}
	if !got.UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Errorf("got unit price %s, want 50", got.UnitPrice)
	}
}

func TestReceiptItemMissingReference(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	receipts := NewReceiptRepository(s)
	items := NewReceiptItemRepository(s)

	customer := &entity.Customer{CompanyName: "Acme"}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatal(err)
	}
	receipt := &entity.Receipt{ReceiptNumber: "RCP-20240501-001", CustomerID: customer.ID}
	if err := receipts.Create(ctx, receipt); err != nil {
		t.Fatal(err)
	}

	missing := customer.ID
	err := items.Create(ctx, &entity.ReceiptItem{ReceiptID: receipt.ID, ShipmentID: &missing})
	if !errors.Is(err, domainRepo.ErrMissingReference) {
		t.Errorf("got %v, want %v", err, domainRepo.ErrMissingReference)
	}
}

func TestReceiptDeleteCascadesItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	customers := NewCustomerRepository(s)
	receipts := NewReceiptRepository(s)
	items := NewReceiptItemRepository(s)

	customer := &entity.Customer{CompanyName: "Acme"}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatal(err)
	}
	receipt := &entity.Receipt{ReceiptNumber: "RCP-20240501-001", CustomerID: customer.ID}
	if err := receipts.Create(ctx, receipt); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 2; i++ {
		if err := items.Create(ctx, &entity.ReceiptItem{ReceiptID: receipt.ID, Position: i}); err != nil {
			t.Fatal(err)
		}
	}

	if err := receipts.Delete(ctx, receipt.ID); err != nil {
		t.Fatal(err)
	}
	left, _ := items.ListByReceipt(ctx, receipt.ID)
	if len(left) != 0 {
		t.Errorf("got %d items, want 0", len(left))
	}
}
