package uowmock

import (
	"context"
	"errors"
	"testing"

	"loan-management-system/internal/domain/loan"
	"loan-management-system/internal/domain/uow"
	"loan-management-system/internal/testutil/customermock"
	"loan-management-system/internal/testutil/loanmock"
	"loan-management-system/internal/testutil/usermock"
)

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(ctx, "LN-X", func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_WithinTx_ForwardsRepos(t *testing.T) {
	ctx := context.Background()
	users := &usermock.Repo{}
	customers := &customermock.Repo{}
	loans := &loanmock.Repo{}
	m := Passthrough(uow.Repos{Users: users, Customers: customers, Loans: loans})

	called := false
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		called = true
		if r.Users != users || r.Customers != customers || r.Loans != loans {
			t.Fatalf("repos not forwarded")
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("WithinTx: err=%v called=%v", err, called)
	}
}

func TestPassthrough_WithinLoanTx_LoadsLoan(t *testing.T) {
	ctx := context.Background()
	want := &loan.Loan{ID: 7, LoanID: "LN-7"}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*loan.Loan, error) {
			if loanID != "LN-7" {
				t.Fatalf("loanID mismatch, got %s", loanID)
			}
			return want, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	err := m.WithinLoanTx(ctx, "LN-7", func(r uow.Repos, l *loan.Loan) error {
		if l != want {
			t.Fatalf("loan not forwarded: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
}

func TestPassthrough_WithinLoanTx_LoadErrorSkipsCallback(t *testing.T) {
	ctx := context.Background()
	m := Passthrough(uow.Repos{Loans: &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
			return nil, loan.ErrNotFound
		},
	}})

	err := m.WithinLoanTx(ctx, "LN-NOPE", func(uow.Repos, *loan.Loan) error {
		t.Fatalf("callback must not run when the loan cannot be loaded")
		return nil
	})
	if !errors.Is(err, loan.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
