package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	// Lookup of the profile owned by an identity (users.user_id)
	GetByUserID(ctx context.Context, userID string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]Customer, error)
}
