package mysql

import (
	"gorm.io/gorm"

	"loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/loan"
	"loan-management-system/internal/domain/user"
)

// AutoMigrate creates or updates users, customers and loans.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &customer.Customer{}, &loan.Loan{})
}
