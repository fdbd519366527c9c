// Package pricing derives the unit and line price of a receipt item.
//
// A line is priced from an explicit unit price when one is given, otherwise
// from the linked category's unit price as it stands at that moment. The
// chosen unit price is copied onto the line; later category edits never
// reach it.
package pricing

import (
	"errors"

	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Decimal places stored for each quantity
const (
	CBMPlaces   = 3
	MoneyPlaces = 2
)

// Exclusive upper bounds of the stored columns: cbm is decimal(10,3), unit
// and line prices decimal(10,2), the receipt total decimal(15,2).
var (
	CBMLimit          = decimal.New(1, 7)
	MoneyLimit        = decimal.New(1, 8)
	ReceiptTotalLimit = decimal.New(1, 13)
)

var (
	// ErrNoPriceSource is returned when a line has neither an explicit unit
	// price nor a category to take one from.
	ErrNoPriceSource = errors.New("pricing: item needs a unit price or a category")
	// ErrTotalTooLarge is returned when cbm × unit price does not fit a line total.
	ErrTotalTooLarge = errors.New("pricing: line total exceeds the storable amount")
)

// Input is the priceable part of a line item.
type Input struct {
	CBM decimal.Decimal
	// UnitPrice overrides the category price when set, including zero.
	UnitPrice *decimal.Decimal
}

// Quote is a priced line.
type Quote struct {
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// Price resolves the unit price for in and computes the line total.
// categoryPrice is nil when the line has no category.
func Price(in Input, categoryPrice *decimal.Decimal) (Quote, error) {
	var unit decimal.Decimal
	switch {
	case in.UnitPrice != nil:
		unit = *in.UnitPrice
	case categoryPrice != nil:
		unit = *categoryPrice
	default:
		return Quote{}, ErrNoPriceSource
	}
	total := Total(in.CBM, unit)
	if CheckTotal(total) != nil {
		return Quote{}, ErrTotalTooLarge
	}
	return Quote{UnitPrice: unit, TotalPrice: total}, nil
}

// Total is cbm × unitPrice rounded half-up to two decimal places.
func Total(cbm, unitPrice decimal.Decimal) decimal.Decimal {
	return cbm.Mul(unitPrice).Round(MoneyPlaces)
}

// Validate checks the shape of a line before anything is persisted.
// hasCategory reports whether the line links a category.
func Validate(in Input, hasCategory bool) []apperror.FieldError {
	var errs []apperror.FieldError
	if fe := CheckCBM(in.CBM); fe != nil {
		errs = append(errs, *fe)
	}
	if in.UnitPrice != nil {
		if fe := CheckMoney("unit_price", *in.UnitPrice); fe != nil {
			errs = append(errs, *fe)
		}
	} else if !hasCategory {
		errs = append(errs, apperror.FieldError{
			Field:   "unit_price",
			Message: "Either unit_price or category is required",
		})
	}
	if len(errs) == 0 && in.UnitPrice != nil {
		if fe := CheckTotal(Total(in.CBM, *in.UnitPrice)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// CheckCBM rejects negative volumes, volumes finer than a litre and volumes
// the cbm column cannot hold.
func CheckCBM(cbm decimal.Decimal) *apperror.FieldError {
	if cbm.IsNegative() {
		return &apperror.FieldError{Field: "cbm", Message: "must not be negative"}
	}
	if cbm.GreaterThanOrEqual(CBMLimit) {
		return &apperror.FieldError{Field: "cbm", Message: "must be less than " + CBMLimit.String()}
	}
	if !cbm.Round(CBMPlaces).Equal(cbm) {
		return &apperror.FieldError{Field: "cbm", Message: "must have at most 3 decimal places"}
	}
	return nil
}

// CheckMoney rejects negative amounts, fractions of a cent and amounts with
// more than eight integer digits.
func CheckMoney(field string, amount decimal.Decimal) *apperror.FieldError {
	if amount.IsNegative() {
		return &apperror.FieldError{Field: field, Message: "must not be negative"}
	}
	if amount.GreaterThanOrEqual(MoneyLimit) {
		return &apperror.FieldError{Field: field, Message: "must be less than " + MoneyLimit.String()}
	}
	if !amount.Round(MoneyPlaces).Equal(amount) {
		return &apperror.FieldError{Field: field, Message: "must have at most 2 decimal places"}
	}
	return nil
}

// CheckTotal rejects a line total the total_price column cannot hold.
func CheckTotal(total decimal.Decimal) *apperror.FieldError {
	if total.GreaterThanOrEqual(MoneyLimit) {
		return &apperror.FieldError{Field: "total_price", Message: "cbm × unit_price must be less than " + MoneyLimit.String()}
	}
	return nil
}

// CheckReceiptTotal rejects a receipt total the total_amount column cannot hold.
func CheckReceiptTotal(total decimal.Decimal) *apperror.FieldError {
	if total.GreaterThanOrEqual(ReceiptTotalLimit) {
		return &apperror.FieldError{Field: "total_amount", Message: "must be less than " + ReceiptTotalLimit.String()}
	}
	return nil
}

// Sum adds up line totals exactly.
func Sum(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}
