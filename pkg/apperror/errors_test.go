package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NewNotFoundError("Receipt"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("create: %w", ErrSequenceExhausted), http.StatusConflict},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAppError(tt.err).Code; got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetAppErrorHidesInternalMessage(t *testing.T) {
	got := GetAppError(errors.New("pq: password authentication failed"))
	if got.Message != ErrInternalServer.Message {
		t.Errorf("got %q, want %q", got.Message, ErrInternalServer.Message)
	}
}

func TestPrefix(t *testing.T) {
	errs := []FieldError{{Field: "cbm", Message: "must not be negative"}}

	got := Prefix("items[2]", errs)
	if got[0].Field != "items[2].cbm" {
		t.Errorf("got %q, want %q", got[0].Field, "items[2].cbm")
	}
	if errs[0].Field != "cbm" {
		t.Errorf("input mutated: %q", errs[0].Field)
	}
	if same := Prefix("", errs); same[0].Field != "cbm" {
		t.Errorf("got %q, want %q", same[0].Field, "cbm")
	}
}
