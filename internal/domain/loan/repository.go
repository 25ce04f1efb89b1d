package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Row-locking read, only meaningful inside a transaction
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// Newest applied_at first
	ListByCustomerID(ctx context.Context, customerID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Save(ctx context.Context, l *Loan) error
}
