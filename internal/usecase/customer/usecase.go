package customer

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/errs"
	"loan-management-system/internal/domain/uow"
	"loan-management-system/internal/domain/user"
	"loan-management-system/pkg/id"
)

const MinPasswordLen = 6

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Recorder interface {
	CustomerRegistered()
}

type noopRecorder struct{}

func (noopRecorder) CustomerRegistered() {}

// Usecase is the customer directory: it owns the identity-to-profile link.
type Usecase struct {
	uow       uow.UnitOfWork
	customers domain.Repository
	hasher    PasswordHasher
	validate  *validator.Validate
	recorder  Recorder
	log       *zap.Logger
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithRecorder(r Recorder) Option { return func(u *Usecase) { u.recorder = r } }

func NewUsecase(tx uow.UnitOfWork, customers domain.Repository, hasher PasswordHasher, opts ...Option) *Usecase {
	u := &Usecase{
		uow:       tx,
		customers: customers,
		hasher:    hasher,
		validate:  validator.New(),
		recorder:  noopRecorder{},
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) checkInput(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return errs.Validation("username is required")
	case len(in.Password) < MinPasswordLen:
		return errs.Validation("password must be at least %d characters", MinPasswordLen)
	case strings.TrimSpace(in.Name) == "":
		return errs.Validation("name is required")
	case u.validate.Var(in.Email, "required,email") != nil:
		return errs.Validation("email %q is not valid", in.Email)
	}
	return nil
}

// Register creates the CUSTOMER identity and its profile in one transaction.
// Both uniqueness checks run before either write.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CustomerDTO, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := u.checkInput(in); err != nil {
		return nil, err
	}
	u.log.Info("registering new customer", zap.String("email", in.Email))

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, errs.Infra(err)
	}

	var c *domain.Customer
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Customers.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}
		taken, err = r.Users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrUsernameTaken
		}

		usr := &user.User{
			UserID:       id.NewID32(),
			Username:     in.Username,
			PasswordHash: hash,
			Email:        in.Email,
			Role:         user.RoleCustomer,
			Active:       true,
		}
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}

		c = &domain.Customer{
			CustomerID: id.NewID32(),
			Name:       strings.TrimSpace(in.Name),
			Email:      in.Email,
			Phone:      strings.TrimSpace(in.Phone),
			Address:    strings.TrimSpace(in.Address),
			UserID:     usr.UserID,
		}
		return r.Customers.Create(ctx, c)
	})
	if err != nil {
		return nil, errs.Infra(err)
	}

	u.recorder.CustomerRegistered()
	u.log.Info("customer registered", zap.String("customer_id", c.CustomerID), zap.String("user_id", c.UserID))
	return toDTO(c), nil
}

// FindByIdentity resolves the profile owned by an identity (users.user_id).
func (u *Usecase) FindByIdentity(ctx context.Context, userID string) (*domain.Customer, error) {
	c, err := u.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Infra(err)
	}
	return c, nil
}

func (u *Usecase) List(ctx context.Context) ([]CustomerDTO, error) {
	list, err := u.customers.List(ctx)
	if err != nil {
		return nil, errs.Infra(err)
	}
	out := make([]CustomerDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

func toDTO(c *domain.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID: c.CustomerID,
		UserID:     c.UserID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
	}
}
