package mysql

import (
	"context"

	"gorm.io/gorm"

	customerDomain "loan-management-system/internal/domain/customer"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

// Create relies on the unique indexes on email and user_id as the last line
// against concurrent registrations.
func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, nil, customerDomain.ErrEmailTaken)
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if err := translate(res.Error, customerDomain.ErrNotFound, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&customerDomain.Customer{}).Where("email = ?", email).Count(&n).Error
	return n > 0, translate(err, nil, nil)
}

func (r *CustomerRepository) List(ctx context.Context) ([]customerDomain.Customer, error) {
	out := []customerDomain.Customer{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	if err := translate(err, nil, nil); err != nil {
		return nil, err
	}
	return out, nil
}
