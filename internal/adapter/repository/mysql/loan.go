package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loan-management-system/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, nil, nil)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return translate(r.db.WithContext(ctx).Save(l).Error, nil, nil)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.get(r.db.WithContext(ctx), loanID)
}

// GetByLoanIDForUpdate takes a row lock on MySQL. SQLite has no row locks;
// db.Open starts sqlite transactions with BEGIN IMMEDIATE, so the database
// write lock is already held when this read runs.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(q, loanID)
}

func (r *LoanRepository) get(q *gorm.DB, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := translate(q.Where("loan_id = ?", loanID).First(&out).Error, loanDomain.ErrNotFound, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) ListByCustomerID(ctx context.Context, customerID string) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("applied_at DESC, id DESC").
		Find(&out).Error
	if err := translate(err, nil, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	err := r.db.WithContext(ctx).Order("applied_at DESC, id DESC").Find(&out).Error
	if err := translate(err, nil, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoanRepository) CountByStatus(ctx context.Context) (map[loanDomain.Status]int64, error) {
	var rows []struct {
		Status loanDomain.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err := translate(err, nil, nil); err != nil {
		return nil, err
	}
	out := map[loanDomain.Status]int64{
		loanDomain.StatusPending:  0,
		loanDomain.StatusApproved: 0,
		loanDomain.StatusRejected: 0,
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
