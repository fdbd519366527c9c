package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/pkg/logger"
	"github.com/sangkips/logistics-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PrinterService renders receipts for thermal printers and sends them.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	printerType string
	width       int
	companyName string
	log         logrus.FieldLogger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	printerType string,
	width int,
	companyName string,
	log logrus.FieldLogger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		printerType: printerType,
		width:       width,
		companyName: companyName,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.KindNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample receipt to the printer and returns it.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := sampleReceipt()
	if err := s.printer.Print(FormatReceipt(receipt, s.companyName, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintReceipt prints a stored receipt. The receipt is returned even when
// printing fails so callers can show it instead.
func (s *PrinterService) PrintReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.companyName, s.width)); err != nil {
		logger.LogError(s.log, "PrinterService", "PrintReceipt", "printer rejected receipt", receipt.ReceiptNumber, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a receipt into ESC/POS bytes for paper width
// characters per line.
func FormatReceipt(r *entity.Receipt, companyName string, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetSize(printer.SizeDouble).
		Line(companyName).
		SetSize(printer.SizeNormal).
		SetBold(false).
		Line("RECEIPT").
		SetAlign(printer.AlignLeft).
		Rule('-')

	doc.Columns("No:", r.ReceiptNumber).
		Columns("Date:", r.IssueDate.Format("2006-01-02"))
	if r.Customer != nil {
		doc.Columns("Customer:", r.Customer.CompanyName)
		if r.Customer.HasIssuedCode() {
			doc.Columns("Code:", r.Customer.Code())
		}
	}
	if r.ContainerNumber != "" {
		doc.Columns("Container:", r.ContainerNumber)
	}
	if r.PaymentMethod != "" {
		doc.Columns("Payment:", r.PaymentMethod)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		label := item.Description
		if label == "" && item.Category != nil {
			label = item.Category.Name
		}
		if label == "" {
			label = "Item"
		}
		doc.Wrap(label).
			Columns(fmt.Sprintf("  %s cbm @ %s", item.CBM.StringFixed(3), item.UnitPrice.StringFixed(2)), item.TotalPrice.StringFixed(2))
	}

	doc.Rule('-').
		SetBold(true).
		Columns("TOTAL:", r.TotalAmount.StringFixed(2)).
		SetBold(false).
		Columns("Status:", string(r.PaymentStatus)).
		Rule('-')

	doc.SetAlign(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		SetAlign(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}

func sampleReceipt() *entity.Receipt {
	code := "CUST000"
	return &entity.Receipt{
		ReceiptNumber: "RCP-TEST-001",
		IssueDate:     time.Now(),
		PaymentStatus: enum.PaymentStatusPending,
		Customer:      &entity.Customer{CompanyName: "Printer Test", CustomerCode: &code},
		Items: []entity.ReceiptItem{
			{Position: 1, Description: "Test cargo", CBM: decimal.RequireFromString("2.000"), UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20)},
			{Position: 2, Description: "Test cargo", CBM: decimal.RequireFromString("1.500"), UnitPrice: decimal.NewFromInt(20), TotalPrice: decimal.NewFromInt(30)},
		},
		TotalAmount: decimal.NewFromInt(50),
	}
}
