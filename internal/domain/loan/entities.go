package loan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"loan-management-system/internal/domain/errs"
)

type Type string

const (
	TypePersonal Type = "PERSONAL"
	TypeHome     Type = "HOME"
	TypeCar      Type = "CAR"
)

var typeNames = map[Type]string{
	TypePersonal: "Personal Loan",
	TypeHome:     "Home Loan",
	TypeCar:      "Car Loan",
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) DisplayName() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return string(t)
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var statusNames = map[Status]string{
	StatusPending:  "Pending Review",
	StatusApproved: "Approved",
	StatusRejected: "Rejected",
}

func (s Status) DisplayName() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return string(s)
}

// Terminal reports whether s is a decision outcome.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

const MaxRemarksLen = 1000

var (
	MinAmount = decimal.NewFromInt(1_000)
	MaxAmount = decimal.NewFromInt(10_000_000)
)

var (
	ErrNotFound      = fmt.Errorf("loan %w", errs.ErrNotFound)
	ErrNotAdmin      = fmt.Errorf("%w: loan decisions require the ADMIN role", errs.ErrForbidden)
	ErrInvalidStatus = errs.Validation("decision status must be APPROVED or REJECTED")
)

// Loan is a single application. CustomerID and ProcessedBy hold public ids
// (customers.customer_id, users.user_id); resolve them through the repositories.
type Loan struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string          `gorm:"size:32;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CustomerID   string          `gorm:"size:32;not null;index:idx_loans_customer_applied,priority:1" json:"customer_id"`
	Type         Type            `gorm:"column:loan_type;size:16;not null" json:"loan_type"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	Status       Status          `gorm:"size:16;not null;index" json:"status"`
	Remarks      string          `gorm:"size:1000" json:"remarks"`
	AppliedAt    time.Time       `gorm:"not null;index:idx_loans_customer_applied,priority:2" json:"applied_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy  *string         `gorm:"size:32" json:"processed_by,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// ValidateApplication checks the submission constraints. Nothing is written
// unless it returns nil.
func ValidateApplication(t Type, amount decimal.Decimal, remarks string) error {
	if !t.Valid() {
		return errs.Validation("unknown loan type %q", t)
	}
	if amount.LessThan(MinAmount) {
		return errs.Validation("amount must be at least %s", MinAmount)
	}
	if amount.GreaterThan(MaxAmount) {
		return errs.Validation("amount cannot exceed %s", MaxAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return errs.Validation("amount must have at most 2 decimal places")
	}
	return ValidateRemarks(remarks)
}

func ValidateRemarks(remarks string) error {
	if len([]rune(remarks)) > MaxRemarksLen {
		return errs.Validation("remarks cannot exceed %d characters", MaxRemarksLen)
	}
	return nil
}
