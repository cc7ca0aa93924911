package membership

import (
	"context"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
	"github.com/shubham90-developer/Total-Health-sub004/internal/id"
	"github.com/shubham90-developer/Total-Health-sub004/internal/receipt"
	"github.com/shubham90-developer/Total-Health-sub004/internal/telemetry"
)

// DefaultMaxAttempts bounds the read-validate-write loop of ledger updates
const DefaultMaxAttempts = 3

var tracer = telemetry.Tracer("totalhealth/membership")

// Store is the persistence the service needs; *Repository implements it
type Store interface {
	Create(ctx context.Context, m *Membership) error
	GetByID(ctx context.Context, id string) (*Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
	Update(ctx context.Context, m *Membership, expectedVersion int64) (bool, error)
}

// Service runs the ledger operations against the store
type Service struct {
	store       Store
	receipts    receipt.Sender
	now         func() time.Time
	newID       func() string
	maxAttempts int
}

// NewService creates a new membership service. A nil sender disables receipts.
func NewService(store Store, receipts receipt.Sender) *Service {
	if receipts == nil {
		receipts = receipt.NopSender{}
	}
	return &Service{
		store:       store,
		receipts:    receipts,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return id.NewWithPrefix("mbr_") },
		maxAttempts: DefaultMaxAttempts,
	}
}

// Create opens a new membership ledger
func (s *Service) Create(ctx context.Context, req CreateMembershipRequest) (m *Membership, err error) {
	ctx, span := tracer.Start(ctx, "membership.Create")
	defer func() { telemetry.End(span, err) }()

	created, err := NewMembership(req, s.newID(), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &created); err != nil {
		return nil, apperrors.Internal("failed to create membership", err)
	}
	return &created, nil
}

// Get returns a membership or a not-found error
func (s *Service) Get(ctx context.Context, membershipID string) (*Membership, error) {
	m, err := s.store.GetByID(ctx, membershipID)
	if err != nil {
		return nil, apperrors.Internal("failed to load membership", err)
	}
	if m == nil {
		return nil, notFound()
	}
	return m, nil
}

// ListByUser returns every membership of a user
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	memberships, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list memberships", err)
	}
	return memberships, nil
}

// Punch consumes meals of one day. The request is validated before the store
// is touched; the ledger is then updated all-or-nothing. A receipt snapshot is
// sent after the write commits, and a delivery failure never fails the punch.
func (s *Service) Punch(ctx context.Context, membershipID string, req PunchRequest) (m *Membership, err error) {
	ctx, span := tracer.Start(ctx, "membership.Punch")
	span.SetAttributes(
		attribute.String("membership.id", membershipID),
		attribute.Int("membership.week", req.Week),
		attribute.String("membership.day", string(req.Day)),
	)
	defer func() { telemetry.End(span, err) }()

	if err := ValidatePunch(req); err != nil {
		return nil, err
	}

	updated, err := s.mutate(ctx, membershipID, func(current Membership, now time.Time) (Membership, error) {
		return ApplyPunch(current, req, now)
	})
	if err != nil {
		return nil, err
	}

	if err := s.receipts.SendPunchReceipt(ctx, punchReceipt(updated)); err != nil {
		log.Printf("membership %s: receipt not delivered: %v", updated.ID, err)
	}
	return updated, nil
}

// ChangeStatus performs a manual status transition
func (s *Service) ChangeStatus(ctx context.Context, membershipID string, target Status) (m *Membership, err error) {
	ctx, span := tracer.Start(ctx, "membership.ChangeStatus")
	span.SetAttributes(
		attribute.String("membership.id", membershipID),
		attribute.String("membership.target_status", string(target)),
	)
	defer func() { telemetry.End(span, err) }()

	// Reject the system-only target before reading the store.
	if target == StatusCompleted || !target.Valid() {
		_, err := ApplyStatusChange(Membership{}, target, s.now())
		return nil, err
	}

	return s.mutate(ctx, membershipID, func(current Membership, now time.Time) (Membership, error) {
		return ApplyStatusChange(current, target, now)
	})
}

// mutate runs a compare-and-swap loop: load, apply, write if the version is
// unchanged, otherwise reload and re-validate against the newer state.
func (s *Service) mutate(ctx context.Context, membershipID string, apply func(Membership, time.Time) (Membership, error)) (*Membership, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, err := s.store.GetByID(ctx, membershipID)
		if err != nil {
			return nil, apperrors.Internal("failed to load membership", err)
		}
		if current == nil {
			return nil, notFound()
		}

		next, err := apply(*current, s.now())
		if err != nil {
			return nil, err
		}

		ok, err := s.store.Update(ctx, &next, current.Version)
		if err != nil {
			return nil, apperrors.Internal("failed to save membership", err)
		}
		if ok {
			return &next, nil
		}
		log.Printf("membership %s: version %d changed concurrently (attempt %d/%d)", membershipID, current.Version, attempt, s.maxAttempts)
	}
	return nil, apperrors.New(apperrors.CodeMembershipConcurrentUpdate,
		"This membership was updated by someone else at the same time. Please try again.")
}

func notFound() error {
	return apperrors.New(apperrors.CodeMembershipNotFound, "Membership not found.")
}

func punchReceipt(m *Membership) receipt.PunchReceipt {
	last := m.History[len(m.History)-1]
	items := make([]receipt.Item, 0, len(last.MealItems))
	for _, item := range last.MealItems {
		items = append(items, receipt.Item{
			Title:    item.Title,
			Qty:      item.Qty,
			MealType: string(item.MealType),
		})
	}
	return receipt.PunchReceipt{
		MembershipID:   m.ID,
		UserID:         m.UserID,
		Week:           last.Week,
		Day:            string(last.Day),
		Items:          items,
		MealsConsumed:  last.CurrentConsumed,
		ConsumedMeals:  m.ConsumedMeals,
		RemainingMeals: m.RemainingMeals,
		TotalMeals:     m.TotalMeals,
		Status:         string(m.Status),
		PunchedAt:      last.Timestamp,
	}
}
