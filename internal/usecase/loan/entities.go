package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loan-management-system/internal/domain/loan"
)

type ApplyInput struct {
	Type    domain.Type
	Amount  decimal.Decimal
	Remarks string
}

type DecideInput struct {
	Status  domain.Status
	Remarks string
}

type LoanDTO struct {
	LoanID       string          `json:"loan_id"`
	CustomerID   string          `json:"customer_id"`
	LoanType     domain.Type     `json:"loan_type"`
	LoanTypeName string          `json:"loan_type_name"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Status       domain.Status   `json:"status"`
	StatusName   string          `json:"status_name"`
	Remarks      string          `json:"remarks"`
	AppliedAt    time.Time       `json:"applied_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy  *string         `json:"processed_by,omitempty"`
}

type StatsDTO struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func toDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:       l.LoanID,
		CustomerID:   l.CustomerID,
		LoanType:     l.Type,
		LoanTypeName: l.Type.DisplayName(),
		Amount:       l.Amount,
		InterestRate: l.InterestRate,
		Status:       l.Status,
		StatusName:   l.Status.DisplayName(),
		Remarks:      l.Remarks,
		AppliedAt:    l.AppliedAt,
		ProcessedAt:  l.ProcessedAt,
		ProcessedBy:  l.ProcessedBy,
	}
}

func toDTOs(list []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i]))
	}
	return out
}
