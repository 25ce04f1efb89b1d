package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"loan-management-system/internal/domain/errs"
	"loan-management-system/internal/domain/user"
	"loan-management-system/pkg/clock"
	"loan-management-system/pkg/id"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", errs.ErrUnauthorized)

// Claims is the JWT payload.
type Claims struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Identity  user.Identity `json:"identity"`
}

// Service verifies credentials, issues and validates session tokens and
// hashes passwords for new identities.
type Service struct {
	users  user.Repository
	secret []byte
	ttl    time.Duration
	cost   int
	clock  clock.Clock
	log    *zap.Logger
}

type Option func(*Service)

func WithClock(c clock.Clock) Option { return func(s *Service) { s.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option { return func(s *Service) { s.cost = cost } }

func NewService(users user.Repository, secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		clock:  clock.System(),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		s.log.Warn("login attempt for inactive user", zap.String("username", username))
		return nil, user.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrBadCredentials
	}

	token, exp, err := s.issue(u.Identity())
	if err != nil {
		return nil, err
	}
	s.log.Info("login successful", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return &LoginResult{Token: token, ExpiresAt: exp, Identity: u.Identity()}, nil
}

func (s *Service) issue(ident user.Identity) (string, time.Time, error) {
	now := s.clock.Now()
	exp := now.Add(s.ttl)
	claims := Claims{
		UserID:   ident.UserID,
		Username: ident.Username,
		Role:     ident.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses a bearer token and reloads its user, so a deleted or
// deactivated account is refused before the token expires. The role is the
// stored one, not the one in the claims.
func (s *Service) Verify(ctx context.Context, token string) (user.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		return user.Identity{}, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return user.Identity{}, ErrInvalidToken
	}

	u, err := s.users.GetByUserID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return user.Identity{}, ErrInvalidToken
	}
	if err != nil {
		return user.Identity{}, errs.Infra(err)
	}
	if !u.Active {
		s.log.Warn("token presented for inactive user", zap.String("username", u.Username))
		return user.Identity{}, ErrInvalidToken
	}
	return u.Identity(), nil
}

// EnsureAdmin creates the bootstrap admin unless the username already exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := s.Hash(password)
	if err != nil {
		return false, err
	}
	err = s.users.Create(ctx, &user.User{
		UserID:       id.NewID32(),
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         user.RoleAdmin,
		Active:       true,
	})
	if errors.Is(err, user.ErrUsernameTaken) {
		// another instance won the race
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("default admin user created", zap.String("username", username))
	return true, nil
}
