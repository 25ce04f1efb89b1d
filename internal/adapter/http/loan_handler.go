package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-management-system/internal/adapter/middleware"
	domain "loan-management-system/internal/domain/loan"
	"loan-management-system/internal/domain/user"
	"loan-management-system/internal/usecase/loan"
)

type LoanWorkflow interface {
	Apply(ctx context.Context, actor user.Identity, in loan.ApplyInput) (*loan.LoanDTO, error)
	Decide(ctx context.Context, admin user.Identity, loanID string, in loan.DecideInput) (*loan.LoanDTO, error)
	ListForCustomer(ctx context.Context, actor user.Identity) ([]loan.LoanDTO, error)
	ListAll(ctx context.Context) ([]loan.LoanDTO, error)
	GetByID(ctx context.Context, loanID string) (*loan.LoanDTO, error)
	Stats(ctx context.Context) (*loan.StatsDTO, error)
}

type LoanHandler struct {
	uc  LoanWorkflow
	log *zap.Logger
}

func NewLoanHandler(uc LoanWorkflow, log *zap.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type applyLoanReq struct {
	LoanType domain.Type     `json:"loan_type" validate:"required,oneof=PERSONAL HOME CAR"`
	Amount   decimal.Decimal `json:"amount"    validate:"required,gte=1000,lte=10000000,dec2"`
	Remarks  string          `json:"remarks"   validate:"max=1000"`
}

type decideLoanReq struct {
	Status  domain.Status `json:"status"  validate:"required,oneof=APPROVED REJECTED"`
	Remarks string        `json:"remarks" validate:"max=1000"`
}

type loanPath struct {
	LoanID string `param:"loan_id" json:"loan_id" validate:"required,hex32"`
}

// loanIDParam binds and validates the :loan_id path segment.
func loanIDParam(c echo.Context) (string, *ErrorResponse) {
	var p loanPath
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return "", &ErrorResponse{Error: "invalid loan id"}
	}
	if err := c.Validate(&p); err != nil {
		return "", &ErrorResponse{Error: "invalid loan id", Details: ToFieldErrors(err)}
	}
	return p.LoanID, nil
}

// actor is only called behind RequireRole, so the identity is always present.
func actor(c echo.Context) user.Identity {
	ident, _ := middleware.IdentityFrom(c)
	return ident
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if code, resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	dto, err := h.uc.Apply(c.Request().Context(), actor(c), loan.ApplyInput{
		Type:    req.LoanType,
		Amount:  req.Amount,
		Remarks: req.Remarks,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	list, err := h.uc.ListForCustomer(c.Request().Context(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	list, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) Stats(c echo.Context) error {
	st, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, resp := loanIDParam(c)
	if resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	dto, err := h.uc.GetByID(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Decide(c echo.Context) error {
	loanID, resp := loanIDParam(c)
	if resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	var req decideLoanReq
	if code, resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(code, resp)
	}
	dto, err := h.uc.Decide(c.Request().Context(), actor(c), loanID, loan.DecideInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
