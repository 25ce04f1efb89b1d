package uow

import (
	"context"

	"loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/loan"
	"loan-management-system/internal/domain/user"
)

// Repos are bound to the same transaction.
type Repos struct {
	Users     user.Repository
	Customers customer.Repository
	Loans     loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
