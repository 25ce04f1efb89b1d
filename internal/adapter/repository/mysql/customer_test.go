package mysql

import (
	"context"
	"errors"
	"testing"

	customerDomain "loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/errs"
	userDomain "loan-management-system/internal/domain/user"
	"loan-management-system/pkg/id"
)

func makeCustomer(email, userID string) *customerDomain.Customer {
	return &customerDomain.Customer{
		CustomerID: id.NewID32(),
		Name:       "Alice Example",
		Email:      email,
		Phone:      "+15550100",
		Address:    "1 Main St",
		UserID:     userID,
	}
}

func TestCustomerRepository_CreateAndLookup(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	c := makeCustomer("alice@example.com", userID)
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byUser, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if byUser.CustomerID != c.CustomerID {
		t.Fatalf("GetByUserID returned %s, want %s", byUser.CustomerID, c.CustomerID)
	}

	if byUser.Email != "alice@example.com" {
		t.Fatalf("email = %q", byUser.Email)
	}

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil || !exists {
		t.Fatalf("ExistsByEmail = %v, %v", exists, err)
	}
	exists, err = repo.ExistsByEmail(ctx, "bob@example.com")
	if err != nil || exists {
		t.Fatalf("ExistsByEmail(bob) = %v, %v", exists, err)
	}
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeCustomer("dup@example.com", id.NewID32())); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := repo.Create(ctx, makeCustomer("dup@example.com", id.NewID32()))
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want already-exists on duplicate email, got %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List len = %d, want 1", len(all))
	}
}

func TestCustomerRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)

	_, err := repo.GetByUserID(context.Background(), id.NewID32())
	if !errors.Is(err, customerDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &userDomain.User{
		UserID:       id.NewID32(),
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		Email:        "alice@example.com",
		Role:         userDomain.RoleCustomer,
		Active:       true,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.UserID != u.UserID || got.Role != userDomain.RoleCustomer {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, err := repo.GetByUserID(ctx, u.UserID); err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}

	exists, err := repo.ExistsByUsername(ctx, "alice")
	if err != nil || !exists {
		t.Fatalf("ExistsByUsername = %v, %v", exists, err)
	}

	dup := *u
	dup.ID = 0
	dup.UserID = id.NewID32()
	if err := repo.Create(ctx, &dup); !errors.Is(err, userDomain.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
