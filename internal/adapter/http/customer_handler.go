package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-management-system/internal/usecase/customer"
)

type CustomerDirectory interface {
	Register(ctx context.Context, in customer.RegisterInput) (*customer.CustomerDTO, error)
	List(ctx context.Context) ([]customer.CustomerDTO, error)
}

type CustomerHandler struct {
	uc  CustomerDirectory
	log *zap.Logger
}

func NewCustomerHandler(uc CustomerDirectory, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
	Address  string `json:"address"  validate:"omitempty,max=500"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerReq
	if code, resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	dto, err := h.uc.Register(c.Request().Context(), customer.RegisterInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CustomerHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}
