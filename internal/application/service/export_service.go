package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const receiptSheet = "Receipt"

// ExportService renders documents as spreadsheets
type ExportService struct {
	receipts    *ReceiptService
	companyName string
}

// NewExportService creates a new export service
func NewExportService(receipts *ReceiptService, companyName string) *ExportService {
	return &ExportService{receipts: receipts, companyName: companyName}
}

// ExportReceipt returns the receipt as an .xlsx workbook and a file name for it.
func (s *ExportService) ExportReceipt(ctx context.Context, id uuid.UUID) (string, *bytes.Buffer, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return "", nil, err
	}

	buf, err := s.receiptWorkbook(receipt)
	if err != nil {
		return "", nil, fmt.Errorf("export receipt %s: %w", receipt.ReceiptNumber, err)
	}
	return receipt.ReceiptNumber + ".xlsx", buf, nil
}

func (s *ExportService) receiptWorkbook(r *entity.Receipt) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", receiptSheet); err != nil {
		return nil, err
	}

	customer := ""
	if r.Customer != nil {
		customer = r.Customer.CompanyName
		if code := r.Customer.Code(); code != "" && r.Customer.HasIssuedCode() {
			customer += " (" + code + ")"
		}
	}

	header := [][2]any{
		{s.companyName, nil},
		{"Receipt", r.ReceiptNumber},
		{"Issue date", r.IssueDate.Format("2006-01-02")},
		{"Customer", customer},
		{"Payment status", string(r.PaymentStatus)},
		{"Container", r.ContainerNumber},
	}
	row := 1
	for _, h := range header {
		if err := setRow(f, row, h[0], h[1]); err != nil {
			return nil, err
		}
		row++
	}

	row++
	tableStart := row
	if err := setRow(f, row, "#", "Description", "Category", "CBM", "Unit price", "Total"); err != nil {
		return nil, err
	}
	for _, item := range r.Items {
		row++
		category := ""
		if item.Category != nil {
			category = item.Category.Name
		}
		if err := setRow(f, row,
			item.Position,
			item.Description,
			category,
			item.CBM.InexactFloat64(),
			item.UnitPrice.InexactFloat64(),
			item.TotalPrice.InexactFloat64(),
		); err != nil {
			return nil, err
		}
	}
	row++
	if err := setRow(f, row, nil, nil, nil, nil, "Total", r.TotalAmount.InexactFloat64()); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(receiptSheet, tableStart, tableStart, bold); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(receiptSheet, row, row, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(receiptSheet, "B", "C", 30); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func setRow(f *excelize.File, row int, values ...any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(receiptSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
