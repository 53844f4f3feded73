package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"bahay/internal/audit"
	housemetrics "bahay/internal/house/metrics"
	"bahay/internal/house/models"
	"bahay/internal/notification"
	"bahay/internal/permit"
	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/sentinel"
	"bahay/pkg/requestcontext"
)

// HouseStore persists boarding houses. Implementations return sentinel errors
// for infrastructure facts; the service translates them to domain errors.
type HouseStore interface {
	Create(ctx context.Context, h *models.BoardingHouse) error
	FindByID(ctx context.Context, houseID id.HouseID) (*models.BoardingHouse, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.BoardingHouse, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.BoardingHouse, error)
	Update(ctx context.Context, h *models.BoardingHouse) error
	// ApplyDecision persists only the compliance fields. Deliberately
	// unguarded: concurrent verifies are last-writer-wins, acceptable for a
	// human-paced admin workflow.
	ApplyDecision(ctx context.Context, houseID id.HouseID, status permit.Status, active bool, updatedAt time.Time) error
	Delete(ctx context.Context, houseID id.HouseID) error
}

// Notifier delivers owner notifications. Satisfied by the notification
// service; failures are logged, never propagated (the status change already
// persisted).
type Notifier interface {
	Emit(ctx context.Context, userID id.UserID, title, message string, kind notification.Type, relatedID string) (*notification.Notification, error)
}

// AuditPublisher mirrors compliance decisions to the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates boarding-house registration and the compliance
// workflow.
type Service struct {
	houses   HouseStore
	notifier Notifier
	auditPub AuditPublisher
	logger   *slog.Logger
	metrics  *housemetrics.Metrics
	tracer   trace.Tracer
}

type Option func(s *Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPub = p }
}

func WithMetrics(m *housemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(houses HouseStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		houses: houses,
		logger: logger,
		tracer: otel.Tracer("bahay/internal/house"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a pending, inactive registration for the owner.
func (s *Service) Register(ctx context.Context, ownerID id.UserID, req *models.RegisterRequest) (*models.BoardingHouse, error) {
	req.Normalize()

	h, err := models.NewBoardingHouse(id.NewHouseID(), ownerID, req, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.houses.Create(ctx, h); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "permit number is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register boarding house")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID: ownerID,
		Subject: h.ID.String(),
		Action:  audit.ActionHouseRegistered,
	})
	if s.metrics != nil {
		s.metrics.IncrementRegistered()
	}
	return h, nil
}

// Get fetches a boarding house by ID.
func (s *Service) Get(ctx context.Context, houseID id.HouseID) (*models.BoardingHouse, error) {
	h, err := s.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, wrapHouseErr(err)
	}
	return h, nil
}

// List returns boarding houses matching the admin filter.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.BoardingHouse, error) {
	houses, err := s.houses.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list boarding houses")
	}
	return houses, nil
}

// ListByOwner returns the owner's registrations.
func (s *Service) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.BoardingHouse, error) {
	houses, err := s.houses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list boarding houses")
	}
	return houses, nil
}

// Update applies owner edits. Permit status and activation are untouched here:
// changed permit dates only take effect at the next admin Verify.
func (s *Service) Update(ctx context.Context, houseID id.HouseID, req *models.UpdateRequest) (*models.BoardingHouse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	h, err := s.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, wrapHouseErr(err)
	}

	applyUpdate(h, req)
	h.UpdatedAt = requestcontext.Now(ctx)

	if err := s.houses.Update(ctx, h); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "permit number is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update boarding house")
	}
	return h, nil
}

// PinLocation sets the geolocation pin. Pinning never flips activation by
// itself; the next Verify does.
func (s *Service) PinLocation(ctx context.Context, houseID id.HouseID, req *models.PinLocationRequest) (*models.BoardingHouse, error) {
	h, err := s.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, wrapHouseErr(err)
	}

	if err := h.Pin(req.Latitude, req.Longitude, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}

	if err := s.houses.Update(ctx, h); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to pin location")
	}
	return h, nil
}

// Delete removes a registration. A plain storage operation; no compliance
// side effects.
func (s *Service) Delete(ctx context.Context, houseID id.HouseID) error {
	if err := s.houses.Delete(ctx, houseID); err != nil {
		return wrapHouseErr(err)
	}
	s.emitAudit(ctx, audit.Event{
		ActorID: requestcontext.UserID(ctx),
		Subject: houseID.String(),
		Action:  audit.ActionHouseDeleted,
	})
	return nil
}

func applyUpdate(h *models.BoardingHouse, req *models.UpdateRequest) {
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Barangay != nil {
		h.Barangay = *req.Barangay
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.ContactNumber != nil {
		h.ContactNumber = *req.ContactNumber
	}
	if req.PermitNumber != nil {
		h.PermitNumber = *req.PermitNumber
	}
	if req.PermitIssueDate != nil {
		if issue, err := dates.Parse(*req.PermitIssueDate); err == nil {
			h.PermitIssueDate = issue
		}
	}
	if req.PermitExpiryDate != nil {
		if expiry, err := dates.Parse(*req.PermitExpiryDate); err == nil {
			h.PermitExpiryDate = expiry
		}
	}
	if req.PermitDocument != nil {
		h.PermitDocument = req.PermitDocument
	}
	if req.PriceMin != nil {
		h.PriceMin = req.PriceMin
	}
	if req.PriceMax != nil {
		h.PriceMax = req.PriceMax
	}
	if req.GenderAccommodation != nil {
		h.GenderAccommodation = req.GenderAccommodation
	}
}

func wrapHouseErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "boarding house not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "boarding house storage failure")
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPub == nil {
		return
	}
	if err := s.auditPub.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err, "action", event.Action)
	}
}
