package invoice

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/form"
)

// ListPath is the invoice list view. It is revalidated after every successful mutation
// and is where create and update redirect to.
const ListPath = "/dashboard/invoices"

const (
	msgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	msgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	msgCreateFailed  = "Failed to create invoice. Please try again."
	msgUpdateFailed  = "Failed to update invoice. Please try again."
	msgDeleteFailed  = "Failed to delete invoice. Please try again."
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)

	ListInvoices(ctx context.Context, filter ListFilter) ([]*ListItem, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}

// Revalidator marks a cached view as stale so it is recomputed on next access.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

type ListFilter struct {
	// Query matches customer name or email, amount, date or status.
	Query string
}

// State is returned to the form when a submission is rejected.
type State struct {
	Errors  form.FieldErrors `json:"errors,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Result is the outcome of a create or update. Exactly one of State and Redirect is set.
type Result struct {
	State    *State
	Redirect string
}

// Redirected reports whether the mutation succeeded and the caller should navigate away.
func (r Result) Redirected() bool {
	return r.State == nil
}

type Service struct {
	repo        Repository
	revalidator Revalidator
	schema      *form.Schema
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used to date new invoices.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService returns a Service that persists through repo and clears cached views
// through revalidator after every successful mutation.
func NewService(repo Repository, revalidator Revalidator, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		revalidator: revalidator,
		schema:      newSchema(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateInvoice validates the form and inserts a new invoice dated today (UTC).
// prev is the state returned by the previous submission of the same form and does not
// influence the outcome.
func (s *Service) CreateInvoice(ctx context.Context, prev State, values form.Values) Result {
	p, errs := parse(s.schema, values)
	if errs != nil {
		return Result{State: &State{Errors: errs, Message: msgCreateInvalid}}
	}

	inv := &Invoice{
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Status:     p.Status,
		Date:       today(s.now()),
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		report(ctx, "failed to create invoice", err)
		return Result{State: &State{Message: msgCreateFailed}}
	}

	return s.redirectToList(ctx)
}

// UpdateInvoice validates the form and overwrites the customer, amount and status of the
// invoice. The date is never changed.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, prev State, values form.Values) Result {
	p, errs := parse(s.schema, values)
	if errs != nil {
		return Result{State: &State{Errors: errs, Message: msgUpdateInvalid}}
	}

	inv := &Invoice{
		ID:         id,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Status:     p.Status,
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		report(ctx, "failed to update invoice", err, "invoice_id", id)
		return Result{State: &State{Message: msgUpdateFailed}}
	}

	return s.redirectToList(ctx)
}

// DeleteInvoice removes the invoice. It returns nil on success.
func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) *State {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		report(ctx, "failed to delete invoice", err, "invoice_id", id)
		return &State{Message: msgDeleteFailed}
	}

	s.revalidator.Revalidate(ctx, ListPath)

	return nil
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context, filter ListFilter) ([]*ListItem, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) redirectToList(ctx context.Context) Result {
	s.revalidator.Revalidate(ctx, ListPath)
	return Result{Redirect: ListPath}
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// report records a store failure that is hidden from the user.
func report(ctx context.Context, msg string, err error, args ...any) {
	slog.ErrorContext(ctx, msg, append([]any{"error", err}, args...)...)

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	}
}
