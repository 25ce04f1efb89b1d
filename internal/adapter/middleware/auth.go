package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-management-system/internal/domain/errs"
	"loan-management-system/internal/domain/user"
)

const (
	identityKey  = "identity"
	authErrorKey = "auth_error"
)

// Verifier turns a bearer token into the acting identity. Rejected tokens
// return an error wrapping errs.ErrUnauthorized.
type Verifier interface {
	Verify(ctx context.Context, token string) (user.Identity, error)
}

// Authenticate resolves the Bearer token, if any, and stores the identity on
// the context. A missing or rejected token leaves the request anonymous, so
// public routes still work; RequireRole answers 401 with the rejection reason.
func Authenticate(v Verifier, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if h == "" {
				return next(c)
			}
			scheme, token, ok := strings.Cut(h, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				c.Set(authErrorKey, "invalid authorization header")
				return next(c)
			}
			ident, err := v.Verify(c.Request().Context(), strings.TrimSpace(token))
			switch {
			case err == nil:
				c.Set(identityKey, ident)
			case errors.Is(err, errs.ErrUnauthorized):
				c.Set(authErrorKey, err.Error())
			default:
				log.Error("token verification failed", zap.String("path", c.Path()), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
			return next(c)
		}
	}
}

// RequireRole rejects anonymous requests with 401 and other roles with 403.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				msg, _ := c.Get(authErrorKey).(string)
				if msg == "" {
					msg = "authentication required"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
			}
			if !slices.Contains(roles, ident.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (user.Identity, bool) {
	ident, ok := c.Get(identityKey).(user.Identity)
	return ident, ok
}
