package loan

import (
	"context"

	"go.uber.org/zap"

	"loan-management-system/internal/domain/customer"
	"loan-management-system/internal/domain/errs"
	domain "loan-management-system/internal/domain/loan"
	"loan-management-system/internal/domain/uow"
	"loan-management-system/internal/domain/user"
	"loan-management-system/pkg/clock"
	"loan-management-system/pkg/id"
)

// CustomerResolver maps an acting identity to its customer profile.
type CustomerResolver interface {
	FindByIdentity(ctx context.Context, userID string) (*customer.Customer, error)
}

type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

type Recorder interface {
	LoanApplied(loanType string)
	LoanDecided(status string)
}

type noopRecorder struct{}

func (noopRecorder) LoanApplied(string) {}
func (noopRecorder) LoanDecided(string) {}

// Usecase is the loan workflow: PENDING -> APPROVED | REJECTED.
// It holds no state between calls; the store is the only shared resource.
type Usecase struct {
	uow       uow.UnitOfWork
	loans     domain.Repository
	customers CustomerResolver
	clock     clock.Clock
	publisher Publisher
	recorder  Recorder
	log       *zap.Logger
}

type Option func(*Usecase)

func WithClock(c clock.Clock) Option { return func(u *Usecase) { u.clock = c } }

func WithPublisher(p Publisher) Option { return func(u *Usecase) { u.publisher = p } }

func WithRecorder(r Recorder) Option { return func(u *Usecase) { u.recorder = r } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func NewUsecase(tx uow.UnitOfWork, loans domain.Repository, customers CustomerResolver, opts ...Option) *Usecase {
	u := &Usecase{
		uow:       tx,
		loans:     loans,
		customers: customers,
		clock:     clock.System(),
		recorder:  noopRecorder{},
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Apply submits a new PENDING loan for the acting customer. The rate always
// comes from the default rate table.
func (u *Usecase) Apply(ctx context.Context, actor user.Identity, in ApplyInput) (*LoanDTO, error) {
	if err := domain.ValidateApplication(in.Type, in.Amount, in.Remarks); err != nil {
		return nil, err
	}
	u.log.Info("processing loan application", zap.String("username", actor.Username))

	c, err := u.customers.FindByIdentity(ctx, actor.UserID)
	if err != nil {
		return nil, errs.Infra(err)
	}

	l := &domain.Loan{
		LoanID:       id.NewID32(),
		CustomerID:   c.CustomerID,
		Type:         in.Type,
		Amount:       in.Amount.Round(2),
		InterestRate: domain.DefaultRateFor(in.Type),
		Status:       domain.StatusPending,
		Remarks:      in.Remarks,
		AppliedAt:    u.clock.Now(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, errs.Infra(err)
	}

	dto := toDTO(l)
	u.recorder.LoanApplied(string(l.Type))
	u.publish(ctx, domain.EventApplied, dto)
	u.log.Info("loan application submitted",
		zap.String("loan_id", l.LoanID),
		zap.String("customer_id", l.CustomerID),
		zap.String("loan_type", string(l.Type)),
		zap.String("interest_rate", l.InterestRate.StringFixed(2)))
	return &dto, nil
}

// Decide records an admin decision. The loan row is locked for the duration
// of the transaction so concurrent decisions on one loan serialize.
func (u *Usecase) Decide(ctx context.Context, admin user.Identity, loanID string, in DecideInput) (*LoanDTO, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrNotAdmin
	}
	if !in.Status.Terminal() {
		return nil, domain.ErrInvalidStatus
	}
	if err := domain.ValidateRemarks(in.Remarks); err != nil {
		return nil, err
	}
	u.log.Info("updating loan status", zap.String("loan_id", loanID), zap.String("admin", admin.Username))

	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status.Terminal() {
			// decisions are not final: a re-decision replaces status, remarks and processor
			u.log.Warn("overwriting an existing loan decision",
				zap.String("loan_id", l.LoanID),
				zap.String("previous_status", string(l.Status)),
				zap.String("new_status", string(in.Status)))
		}

		now := u.clock.Now()
		if now.Before(l.AppliedAt) {
			now = l.AppliedAt
		}
		adminID := admin.UserID
		l.Status = in.Status
		l.Remarks = in.Remarks
		l.ProcessedAt = &now
		l.ProcessedBy = &adminID
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, errs.Infra(err)
	}

	u.recorder.LoanDecided(string(dto.Status))
	u.publish(ctx, domain.EventDecided, dto)
	u.log.Info("loan status updated", zap.String("loan_id", loanID), zap.String("status", string(dto.Status)))
	return &dto, nil
}

func (u *Usecase) ListForCustomer(ctx context.Context, actor user.Identity) ([]LoanDTO, error) {
	c, err := u.customers.FindByIdentity(ctx, actor.UserID)
	if err != nil {
		return nil, errs.Infra(err)
	}
	list, err := u.loans.ListByCustomerID(ctx, c.CustomerID)
	if err != nil {
		return nil, errs.Infra(err)
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]LoanDTO, error) {
	list, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, errs.Infra(err)
	}
	return toDTOs(list), nil
}

func (u *Usecase) GetByID(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, errs.Infra(err)
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	counts, err := u.loans.CountByStatus(ctx)
	if err != nil {
		return nil, errs.Infra(err)
	}
	s := &StatsDTO{
		Pending:  counts[domain.StatusPending],
		Approved: counts[domain.StatusApproved],
		Rejected: counts[domain.StatusRejected],
	}
	s.Total = s.Pending + s.Approved + s.Rejected
	return s, nil
}

// publish runs after commit; a failure here cannot undo the write, so it is
// only logged.
func (u *Usecase) publish(ctx context.Context, eventType string, dto LoanDTO) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, domain.EventStream, eventType, dto); err != nil {
		u.log.Warn("loan event not published", zap.String("type", eventType), zap.String("loan_id", dto.LoanID), zap.Error(err))
	}
}
