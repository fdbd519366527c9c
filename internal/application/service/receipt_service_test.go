package service

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/repository"
)

func TestCreateReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items: []ReceiptItemInput{
			{Description: "Sofa", CBM: dec("2.000"), UnitPrice: decPtr("10.00")},
			{Description: "Boxes", CBM: dec("1.500"), UnitPrice: decPtr("20.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt: %v", err)
	}

	if receipt.ReceiptNumber != "RCP-20240501-001" {
		t.Errorf("got number %s, want RCP-20240501-001", receipt.ReceiptNumber)
	}
	if !receipt.TotalAmount.Equal(dec("50.00")) {
		t.Errorf("got total %s, want 50.00", receipt.TotalAmount)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(receipt.Items))
	}
	wantTotals := []string{"20.00", "30.00"}
	for i, item := range receipt.Items {
		if item.Position != i+1 {
			t.Errorf("item %d: got position %d", i, item.Position)
		}
		if !item.TotalPrice.Equal(dec(wantTotals[i])) {
			t.Errorf("item %d: got total %s, want %s", i, item.TotalPrice, wantTotals[i])
		}
	}
	if receipt.IssueDate.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("got issue date %s", receipt.IssueDate)
	}

	second, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID})
	if err != nil {
		t.Fatal(err)
	}
	if second.ReceiptNumber != "RCP-20240501-002" {
		t.Errorf("got number %s, want RCP-20240501-002", second.ReceiptNumber)
	}
	if !second.TotalAmount.IsZero() {
		t.Errorf("got total %s for empty receipt, want 0", second.TotalAmount)
	}
}

func TestCreateReceiptRejectsItemWithoutPriceSource(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	_, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items: []ReceiptItemInput{
			{CBM: dec("1"), UnitPrice: decPtr("10")},
			{CBM: dec("1")},
		},
	})
	if got := statusOf(err); got != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", got)
	}
	if got := fieldsOf(err); !slices.Equal(got, []string{"items[1].unit_price"}) {
		t.Errorf("got fields %v, want [items[1].unit_price]", got)
	}

	n, _ := f.receipts.Count(ctx)
	if n != 0 {
		t.Errorf("got %d receipts, want 0", n)
	}
	if len(f.itemsOnAnyReceipt(t)) != 0 {
		t.Error("items were persisted")
	}
}

func TestCreateReceiptMissingCategoryRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	missing := uuid.New()

	_, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items: []ReceiptItemInput{
			{CBM: dec("1"), UnitPrice: decPtr("10")},
			{CBM: dec("1"), CategoryID: &missing},
		},
	})
	if got := statusOf(err); got != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", got)
	}
	if got := fieldsOf(err); !slices.Equal(got, []string{"items[1].category_id"}) {
		t.Errorf("got fields %v", got)
	}

	n, _ := f.receipts.Count(ctx)
	if n != 0 {
		t.Errorf("got %d receipts, want 0", n)
	}
	if len(f.itemsOnAnyReceipt(t)) != 0 {
		t.Error("items were persisted")
	}

	// the rolled back attempt gave its number back
	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID})
	if err != nil {
		t.Fatal(err)
	}
	if receipt.ReceiptNumber != "RCP-20240501-001" {
		t.Errorf("got number %s, want RCP-20240501-001", receipt.ReceiptNumber)
	}
}

func TestCreateReceiptUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.receiptSvc.CreateReceipt(context.Background(), &CreateReceiptInput{CustomerID: uuid.New()})
	if got := fieldsOf(err); !slices.Equal(got, []string{"customer_id"}) {
		t.Errorf("got fields %v, want [customer_id]", got)
	}
}

func TestItemPricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	furniture := f.category(t, "Furniture", "12.50")

	tests := []struct {
		name      string
		item      ReceiptItemInput
		wantUnit  string
		wantTotal string
	}{
		{"category price", ReceiptItemInput{CBM: dec("2"), CategoryID: &furniture.ID}, "12.50", "25.00"},
		{"explicit price wins", ReceiptItemInput{CBM: dec("2"), CategoryID: &furniture.ID, UnitPrice: decPtr("8")}, "8.00", "16.00"},
		{"explicit zero wins", ReceiptItemInput{CBM: dec("2"), CategoryID: &furniture.ID, UnitPrice: decPtr("0")}, "0.00", "0.00"},
		{"half rounds up", ReceiptItemInput{CBM: dec("0.005"), UnitPrice: decPtr("1.00")}, "1.00", "0.01"},
		{"three decimal cbm", ReceiptItemInput{CBM: dec("1.333"), UnitPrice: decPtr("3.33")}, "3.33", "4.44"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
				CustomerID: acme.ID,
				Items:      []ReceiptItemInput{tt.item},
			})
			if err != nil {
				t.Fatal(err)
			}
			item := receipt.Items[0]
			if !item.UnitPrice.Equal(dec(tt.wantUnit)) {
				t.Errorf("got unit %s, want %s", item.UnitPrice, tt.wantUnit)
			}
			if !item.TotalPrice.Equal(dec(tt.wantTotal)) {
				t.Errorf("got total %s, want %s", item.TotalPrice, tt.wantTotal)
			}
			if !receipt.TotalAmount.Equal(item.TotalPrice) {
				t.Errorf("got receipt total %s, want %s", receipt.TotalAmount, item.TotalPrice)
			}
		})
	}
}

func TestCategoryPriceChangeKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	furniture := f.category(t, "Furniture", "10.00")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("3"), CategoryID: &furniture.ID}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.categorySvc.UpdateCategory(ctx, &UpdateCategoryInput{ID: furniture.ID, UnitPrice: decPtr("99.00")}); err != nil {
		t.Fatal(err)
	}

	got, err := f.receiptSvc.GetReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Items[0].UnitPrice.Equal(dec("10")) || !got.TotalAmount.Equal(dec("30")) {
		t.Errorf("got unit %s total %s, want 10 and 30", got.Items[0].UnitPrice, got.TotalAmount)
	}
}

func TestItemEditsRecomputeTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	general := f.category(t, "General", "4.00")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("2"), UnitPrice: decPtr("10")}},
	})
	if err != nil {
		t.Fatal(err)
	}

	added, err := f.receiptSvc.AddItem(ctx, receipt.ID, ReceiptItemInput{CBM: dec("1"), UnitPrice: decPtr("5")})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if added.Position != 2 {
		t.Errorf("got position %d, want 2", added.Position)
	}
	f.assertTotal(t, receipt.ID, "25.00")

	// new cbm keeps the stored unit price
	if _, err := f.receiptSvc.UpdateItem(ctx, receipt.ID, added.ID, UpdateItemInput{CBM: decPtr("3")}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	f.assertTotal(t, receipt.ID, "35.00")

	// moving to a category takes its price
	updated, err := f.receiptSvc.UpdateItem(ctx, receipt.ID, added.ID, UpdateItemInput{CategoryID: &general.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.UnitPrice.Equal(dec("4")) {
		t.Errorf("got unit %s, want 4", updated.UnitPrice)
	}
	f.assertTotal(t, receipt.ID, "32.00")

	if err := f.receiptSvc.RemoveItem(ctx, receipt.ID, added.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	f.assertTotal(t, receipt.ID, "20.00")
}

func TestItemEditsOnUnknownReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.receiptSvc.AddItem(ctx, uuid.New(), ReceiptItemInput{CBM: dec("1"), UnitPrice: decPtr("1")})
	if got := statusOf(err); got != http.StatusNotFound {
		t.Errorf("AddItem: got status %d, want 404", got)
	}
	err = f.receiptSvc.RemoveItem(ctx, uuid.New(), uuid.New())
	if got := statusOf(err); got != http.StatusNotFound {
		t.Errorf("RemoveItem: got status %d, want 404", got)
	}
}

func TestItemFromAnotherReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	first, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("1")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID})
	if err != nil {
		t.Fatal(err)
	}

	err = f.receiptSvc.RemoveItem(ctx, second.ID, first.Items[0].ID)
	if got := statusOf(err); got != http.StatusNotFound {
		t.Errorf("got status %d, want 404", got)
	}
	f.assertTotal(t, first.ID, "1.00")
}

func TestConcurrentReceiptNumbersAreDistinct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	const n = 20
	numbers := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
				CustomerID: acme.ID,
				Items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("1")}},
			})
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = r.ReceiptNumber
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	slices.Sort(numbers)
	for i, got := range numbers {
		want := "RCP-20240501-" + pad3(i+1)
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}
}

func TestReceiptNumbersResetPerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	if _, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID}); err != nil {
		t.Fatal(err)
	}

	f.receiptSvc.WithClock(func() time.Time { return may1.AddDate(0, 0, 1) })
	r, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID})
	if err != nil {
		t.Fatal(err)
	}
	if r.ReceiptNumber != "RCP-20240502-001" {
		t.Errorf("got %s, want RCP-20240502-001", r.ReceiptNumber)
	}
}

func TestDeleteCategoryKeepsItemPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	furniture := f.category(t, "Furniture", "50.00")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("1.5"), CategoryID: &furniture.ID}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.categorySvc.DeleteCategory(ctx, furniture.ID); err != nil {
		t.Fatal(err)
	}

	got, err := f.receiptSvc.GetReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatal(err)
	}
	item := got.Items[0]
	if item.CategoryID != nil {
		t.Errorf("got category %v, want nil", item.CategoryID)
	}
	if !item.UnitPrice.Equal(dec("50")) || !item.TotalPrice.Equal(dec("75")) {
		t.Errorf("got unit %s total %s, want 50 and 75", item.UnitPrice, item.TotalPrice)
	}
	if !got.TotalAmount.Equal(dec("75")) {
		t.Errorf("got receipt total %s, want 75", got.TotalAmount)
	}
}

func TestDeleteShipmentKeepsItemPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	shipment, err := f.shipmentSvc.CreateShipment(ctx, &CreateShipmentInput{
		TrackingNumber: "TRK-1",
		CustomerID:     acme.ID,
		Origin:         "Guangzhou",
		Destination:    "Mombasa",
	})
	if err != nil {
		t.Fatal(err)
	}
	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("2"), UnitPrice: decPtr("7.25"), ShipmentID: &shipment.ID}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.shipmentSvc.DeleteShipment(ctx, shipment.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := f.receiptSvc.GetReceipt(ctx, receipt.ID)
	if got.Items[0].ShipmentID != nil {
		t.Error("shipment reference was not cleared")
	}
	if !got.Items[0].TotalPrice.Equal(dec("14.50")) {
		t.Errorf("got total %s, want 14.50", got.Items[0].TotalPrice)
	}
}

func TestDeleteReceiptRemovesItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("1")}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.receiptSvc.DeleteReceipt(ctx, receipt.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.receiptSvc.GetReceipt(ctx, receipt.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("got %v, want not found", err)
	}
	if len(f.itemsOnAnyReceipt(t)) != 0 {
		t.Error("items survived their receipt")
	}
}

func TestUpdateReceiptHeader(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	beta := f.customer(t, "Beta")

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("9.99")}},
	})
	if err != nil {
		t.Fatal(err)
	}

	paid := enumPaid()
	container := "MSKU1234567"
	got, err := f.receiptSvc.UpdateReceipt(ctx, &UpdateReceiptInput{
		ID:              receipt.ID,
		CustomerID:      &beta.ID,
		PaymentStatus:   &paid,
		ContainerNumber: &container,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.CustomerID != beta.ID || got.PaymentStatus != paid || got.ContainerNumber != container {
		t.Errorf("header not updated: %+v", got)
	}
	if got.ReceiptNumber != receipt.ReceiptNumber || !got.TotalAmount.Equal(dec("9.99")) {
		t.Errorf("got number %s total %s, want unchanged", got.ReceiptNumber, got.TotalAmount)
	}

	missing := uuid.New()
	_, err = f.receiptSvc.UpdateReceipt(ctx, &UpdateReceiptInput{ID: receipt.ID, CustomerID: &missing})
	if got := fieldsOf(err); !slices.Equal(got, []string{"customer_id"}) {
		t.Errorf("got fields %v, want [customer_id]", got)
	}
}

func TestListReceiptsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	beta := f.customer(t, "Beta")

	for _, c := range []uuid.UUID{acme.ID, acme.ID, beta.ID} {
		if _, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: c}); err != nil {
			t.Fatal(err)
		}
	}

	result, err := f.receiptSvc.ListReceipts(ctx, &repository.ReceiptFilter{CustomerID: &acme.ID})
	if err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 2 || len(result.Items) != 2 {
		t.Errorf("got %d of %d receipts, want 2", len(result.Items), result.Pagination.Total)
	}
}

func TestOversizedItemsAreRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme := f.customer(t, "Acme")
	pricey := f.category(t, "Pricey", "99999999.99")

	t.Run("create", func(t *testing.T) {
		tests := []struct {
			name       string
			items      []ReceiptItemInput
			wantFields []string
		}{
			{
				name:       "explicit values too large",
				items:      []ReceiptItemInput{{CBM: dec("50000000.000"), UnitPrice: decPtr("500000000.00")}},
				wantFields: []string{"items[0].cbm", "items[0].unit_price"},
			},
			{
				name:       "explicit total too large",
				items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("1")}, {CBM: dec("5000"), UnitPrice: decPtr("20000")}},
				wantFields: []string{"items[1].total_price"},
			},
			{
				name:       "category total too large",
				items:      []ReceiptItemInput{{CBM: dec("1"), UnitPrice: decPtr("1")}, {CBM: dec("2"), CategoryID: &pricey.ID}},
				wantFields: []string{"items[1].total_price"},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{CustomerID: acme.ID, Items: tt.items})
				if got := statusOf(err); got != http.StatusUnprocessableEntity {
					t.Fatalf("got status %d, want 422 (%v)", got, err)
				}
				if got := fieldsOf(err); !slices.Equal(got, tt.wantFields) {
					t.Errorf("got fields %v, want %v", got, tt.wantFields)
				}
			})
		}

		if n, _ := f.receipts.Count(ctx); n != 0 {
			t.Errorf("got %d receipts, want 0", n)
		}
	})

	receipt, err := f.receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		CustomerID: acme.ID,
		Items:      []ReceiptItemInput{{CBM: dec("2"), UnitPrice: decPtr("10")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	itemID := receipt.Items[0].ID

	t.Run("add item", func(t *testing.T) {
		_, err := f.receiptSvc.AddItem(ctx, receipt.ID, ReceiptItemInput{CBM: dec("2"), CategoryID: &pricey.ID})
		if got := statusOf(err); got != http.StatusUnprocessableEntity {
			t.Fatalf("got status %d, want 422 (%v)", got, err)
		}
		if got := fieldsOf(err); !slices.Equal(got, []string{"total_price"}) {
			t.Errorf("got fields %v", got)
		}
	})

	t.Run("update item", func(t *testing.T) {
		_, err := f.receiptSvc.UpdateItem(ctx, receipt.ID, itemID, UpdateItemInput{UnitPrice: decPtr("99999999.99")})
		if got := statusOf(err); got != http.StatusUnprocessableEntity {
			t.Fatalf("got status %d, want 422 (%v)", got, err)
		}
		if got := fieldsOf(err); !slices.Equal(got, []string{"total_price"}) {
			t.Errorf("got fields %v", got)
		}

		_, err = f.receiptSvc.UpdateItem(ctx, receipt.ID, itemID, UpdateItemInput{CBM: decPtr("10000000")})
		if got := fieldsOf(err); !slices.Equal(got, []string{"cbm"}) {
			t.Errorf("got fields %v, want [cbm]", got)
		}
	})

	f.assertTotal(t, receipt.ID, "20")
}
