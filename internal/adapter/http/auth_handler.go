package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-management-system/internal/domain/user"
	"loan-management-system/internal/usecase/auth"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
}

type AuthHandler struct {
	svc Authenticator
	log *zap.Logger
}

func NewAuthHandler(svc Authenticator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      user.Role `json:"role"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if code, resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	res, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresAt: res.ExpiresAt,
		UserID:    res.Identity.UserID,
		Username:  res.Identity.Username,
		Role:      res.Identity.Role,
	})
}
