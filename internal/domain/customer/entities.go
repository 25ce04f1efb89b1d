package customer

import (
	"fmt"
	"time"

	"loan-management-system/internal/domain/errs"
)

var (
	ErrNotFound   = fmt.Errorf("customer %w", errs.ErrNotFound)
	ErrEmailTaken = fmt.Errorf("customer email %w", errs.ErrAlreadyExists)
)

// Customer is the profile linked to exactly one CUSTOMER identity.
type Customer struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string    `gorm:"size:32;not null;uniqueIndex:ux_customers_customer_id" json:"customer_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:ux_customers_email" json:"email"`
	Phone      string    `gorm:"size:32" json:"phone"`
	Address    string    `gorm:"size:500" json:"address"`
	UserID     string    `gorm:"size:32;not null;uniqueIndex:ux_customers_user_id" json:"user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
