package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/errs"
	"loan-management-system/internal/domain/uow"
	"loan-management-system/internal/domain/user"
	"loan-management-system/internal/testutil/customermock"
	"loan-management-system/internal/testutil/usermock"
	"loan-management-system/internal/testutil/uowmock"
)

type hasherFn func(string) (string, error)

func (f hasherFn) Hash(p string) (string, error) { return f(p) }

var plainHasher = hasherFn(func(p string) (string, error) { return "hashed:" + p, nil })

type countingRecorder struct{ n int }

func (r *countingRecorder) CustomerRegistered() { r.n++ }

func validInput() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Password: "secret1",
		Name:     "Alice",
		Email:    "Alice@Example.com ",
		Phone:    "555-0100",
		Address:  "1 Main St",
	}
}

type fixture struct {
	users     *usermock.Repo
	customers *customermock.Repo
	uc        *Usecase

	createdUsers     []*user.User
	createdCustomers []*domain.Customer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{}
	f.users = &usermock.Repo{
		CreateFn: func(ctx context.Context, u *user.User) error {
			f.createdUsers = append(f.createdUsers, u)
			return nil
		},
	}
	f.customers = &customermock.Repo{
		CreateFn: func(ctx context.Context, c *domain.Customer) error {
			f.createdCustomers = append(f.createdCustomers, c)
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Users: f.users, Customers: f.customers})
	f.uc = NewUsecase(tx, f.customers, plainHasher, opts...)
	return f
}

func TestRegister_Success(t *testing.T) {
	rec := &countingRecorder{}
	f := newFixture(t, WithRecorder(rec))

	dto, err := f.uc.Register(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, f.createdUsers, 1)
	require.Len(t, f.createdCustomers, 1)
	u, c := f.createdUsers[0], f.createdCustomers[0]

	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.Equal(t, "hashed:secret1", u.PasswordHash)
	assert.True(t, u.Active)
	assert.Equal(t, u.UserID, c.UserID, "profile must link to the new identity")
	assert.Equal(t, "alice@example.com", c.Email)
	assert.Len(t, c.CustomerID, 32)
	assert.Equal(t, c.CustomerID, dto.CustomerID)
	assert.Equal(t, 1, rec.n)
}

func TestRegister_Duplicates(t *testing.T) {
	t.Run("email", func(t *testing.T) {
		f := newFixture(t)
		f.customers.ExistsByEmailFn = func(ctx context.Context, email string) (bool, error) {
			return email == "alice@example.com", nil
		}
		_, err := f.uc.Register(context.Background(), validInput())
		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		assert.Empty(t, f.createdUsers)
		assert.Empty(t, f.createdCustomers)
	})

	t.Run("username", func(t *testing.T) {
		f := newFixture(t)
		f.users.ExistsByUsernameFn = func(ctx context.Context, username string) (bool, error) {
			return username == "alice", nil
		}
		_, err := f.uc.Register(context.Background(), validInput())
		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
		assert.Empty(t, f.createdUsers)
		assert.Empty(t, f.createdCustomers)
	})
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"blank username", func(in *RegisterInput) { in.Username = "  " }},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }},
		{"blank name", func(in *RegisterInput) { in.Name = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validInput()
			tt.mutate(&in)

			_, err := f.uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Empty(t, f.createdUsers)
		})
	}
}

func TestRegister_Failures(t *testing.T) {
	t.Run("hasher", func(t *testing.T) {
		f := newFixture(t)
		f.uc.hasher = hasherFn(func(string) (string, error) { return "", errors.New("bcrypt broke") })

		_, err := f.uc.Register(context.Background(), validInput())
		assert.ErrorIs(t, err, errs.ErrInfrastructure)
	})

	t.Run("profile insert", func(t *testing.T) {
		f := newFixture(t)
		f.customers.CreateFn = func(ctx context.Context, c *domain.Customer) error {
			return errors.New("connection reset")
		}

		_, err := f.uc.Register(context.Background(), validInput())
		assert.ErrorIs(t, err, errs.ErrInfrastructure)
	})
}

func TestFindByIdentity(t *testing.T) {
	f := newFixture(t)
	f.customers.GetByUserIDFn = func(ctx context.Context, userID string) (*domain.Customer, error) {
		if userID == "known" {
			return &domain.Customer{CustomerID: "c1", UserID: userID}, nil
		}
		return nil, domain.ErrNotFound
	}

	c, err := f.uc.FindByIdentity(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.CustomerID)

	_, err = f.uc.FindByIdentity(context.Background(), "admin-without-profile")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.customers.ListFn = func(ctx context.Context) ([]domain.Customer, error) {
		return []domain.Customer{{CustomerID: "c1"}, {CustomerID: "c2"}}, nil
	}

	got, err := f.uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[1].CustomerID)
}
