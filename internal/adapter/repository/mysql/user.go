package mysql

import (
	"context"

	"gorm.io/gorm"

	userDomain "loan-management-system/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, nil, userDomain.ErrUsernameTaken)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if err := translate(res.Error, userDomain.ErrNotFound, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	if err := translate(res.Error, userDomain.ErrNotFound, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, translate(err, nil, nil)
}
