package user

import (
	"fmt"
	"time"

	"loan-management-system/internal/domain/errs"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleCustomer }

var (
	ErrNotFound       = fmt.Errorf("user %w", errs.ErrNotFound)
	ErrUsernameTaken  = fmt.Errorf("username %w", errs.ErrAlreadyExists)
	ErrBadCredentials = fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
)

// User is the backing identity of an actor. Customers get one at registration,
// admins are bootstrapped at startup.
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Identity is the authenticated actor handed to every workflow operation.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *User) Identity() Identity {
	return Identity{UserID: u.UserID, Username: u.Username, Role: u.Role}
}

func (i Identity) IsAdmin() bool    { return i.Role == RoleAdmin }
func (i Identity) IsCustomer() bool { return i.Role == RoleCustomer }
