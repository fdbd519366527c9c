// Package identifier defines the human-readable codes issued to staff,
// customers and receipts, and how a code's numeric suffix is read back.
//
// A Scope names one counter: all employee codes, all customer codes, or the
// receipts of a single calendar day. Codes within a scope are the scope
// prefix followed by a zero-padded decimal number.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the entity family a code belongs to
type Kind string

const (
	KindStaff    Kind = "staff"
	KindCustomer Kind = "customer"
	KindReceipt  Kind = "receipt"
)

// PadWidth is the minimum number of digits in a generated suffix.
const PadWidth = 3

// PlaceholderPrefix marks temporary customer codes. It never matches the
// CUST prefix, so placeholders are invisible to the customer counter.
const PlaceholderPrefix = "TMP-"

const dayLayout = "20060102"

// Scope identifies one counter.
type Scope struct {
	Kind Kind
	// Day is set for receipt scopes only, truncated to the calendar date
	// in its own location.
	Day time.Time
}

func Staff() Scope    { return Scope{Kind: KindStaff} }
func Customer() Scope { return Scope{Kind: KindCustomer} }

// ReceiptDay returns the receipt scope for the calendar day of t,
// evaluated in t's location.
func ReceiptDay(t time.Time) Scope {
	y, m, d := t.Date()
	return Scope{Kind: KindReceipt, Day: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// Prefix is the fixed text every code of the scope starts with.
func (s Scope) Prefix() string {
	switch s.Kind {
	case KindStaff:
		return "EMP"
	case KindCustomer:
		return "CUST"
	case KindReceipt:
		return "RCP-" + s.Day.Format(dayLayout) + "-"
	}
	return ""
}

// Key is the stable name under which the scope's counter is stored.
func (s Scope) Key() string {
	return string(s.Kind) + ":" + s.Prefix()
}

func (s Scope) String() string { return s.Key() }

// Format renders n as a code of this scope, e.g. EMP007 or RCP-20240501-012.
// Numbers wider than PadWidth are written in full.
func (s Scope) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix(), PadWidth, n)
}

// Parse extracts the numeric suffix of code. It reports false unless code is
// exactly the scope prefix followed by one or more ASCII digits.
func (s Scope) Parse(code string) (int64, bool) {
	prefix := s.Prefix()
	if prefix == "" || !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	digits := code[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Highest returns the largest suffix among codes that belong to the scope,
// or 0 when none do. Malformed codes are skipped.
func (s Scope) Highest(codes []string) int64 {
	var max int64
	for _, c := range codes {
		if n, ok := s.Parse(c); ok && n > max {
			max = n
		}
	}
	return max
}

// Placeholder returns a temporary customer code that cannot collide with
// another placeholder or with any generated code.
func Placeholder() string {
	return PlaceholderPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// IsPlaceholder reports whether code was produced by Placeholder.
func IsPlaceholder(code string) bool {
	return strings.HasPrefix(code, PlaceholderPrefix)
}
