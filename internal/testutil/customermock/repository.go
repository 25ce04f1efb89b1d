package customermock

import (
	"context"

	domain "loan-management-system/internal/domain/customer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, c *domain.Customer) error
	GetByUserIDFn   func(ctx context.Context, userID string) (*domain.Customer, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
	ListFn          func(ctx context.Context) ([]domain.Customer, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Customer, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Customer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
