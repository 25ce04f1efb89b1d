package loan

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"loan-management-system/internal/domain/errs"
)

func TestDefaultRateFor(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypePersonal, "12.50"},
		{TypeHome, "8.75"},
		{TypeCar, "10.25"},
		{Type("BOAT"), "15.00"},
		{Type(""), "15.00"},
	}
	for _, tt := range tests {
		got := DefaultRateFor(tt.typ)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("DefaultRateFor(%q) = %s, want %s", tt.typ, got, tt.want)
		}
		if got.StringFixed(2) != tt.want {
			t.Errorf("DefaultRateFor(%q) fixed = %s, want %s", tt.typ, got.StringFixed(2), tt.want)
		}
	}
}

func TestValidateApplication(t *testing.T) {
	long := strings.Repeat("x", MaxRemarksLen+1)
	tests := []struct {
		name    string
		typ     Type
		amount  string
		remarks string
		wantErr bool
	}{
		{"lower bound inclusive", TypeHome, "1000", "", false},
		{"upper bound inclusive", TypeCar, "10000000", "", false},
		{"cents allowed", TypePersonal, "2500.75", "", false},
		{"below minimum", TypeHome, "500", "", true},
		{"above maximum", TypeHome, "10000000.01", "", true},
		{"three decimals", TypeHome, "1000.001", "", true},
		{"unknown type", Type("BOAT"), "5000", "", true},
		{"remarks too long", TypeHome, "5000", long, true},
		{"remarks at limit", TypeHome, "5000", strings.Repeat("y", MaxRemarksLen), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateApplication(tt.typ, decimal.RequireFromString(tt.amount), tt.remarks)
			if tt.wantErr {
				if !errors.Is(err, errs.ErrValidation) {
					t.Fatalf("want validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDisplayNames(t *testing.T) {
	if TypeHome.DisplayName() != "Home Loan" {
		t.Fatalf("home display = %q", TypeHome.DisplayName())
	}
	if StatusPending.DisplayName() != "Pending Review" {
		t.Fatalf("pending display = %q", StatusPending.DisplayName())
	}
	if Type("BOAT").DisplayName() != "BOAT" {
		t.Fatalf("unknown type should fall back to its code")
	}
	if StatusPending.Terminal() || !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Fatal("terminal states mismatch")
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(ErrNotFound, errs.ErrNotFound) {
		t.Fatal("ErrNotFound must classify as not found")
	}
	if !errors.Is(ErrNotAdmin, errs.ErrForbidden) {
		t.Fatal("ErrNotAdmin must classify as forbidden")
	}
	if !errors.Is(ErrInvalidStatus, errs.ErrValidation) {
		t.Fatal("ErrInvalidStatus must classify as validation")
	}
}
