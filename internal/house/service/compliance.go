package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bahay/internal/audit"
	"bahay/internal/house/models"
	"bahay/internal/notification"
	"bahay/internal/permit"
	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	"bahay/pkg/requestcontext"
)

// Verify re-evaluates the house's permit against today's date and persists the
// resulting status and activation flag. The owner notification is best-effort:
// a delivery failure is logged and swallowed because the decision has already
// been persisted.
func (s *Service) Verify(ctx context.Context, houseID id.HouseID) (*models.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "house.Verify",
		trace.WithAttributes(attribute.String("house.id", houseID.String())))
	defer span.End()
	start := time.Now()

	h, err := s.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, wrapHouseErr(err)
	}

	now := requestcontext.Now(ctx)
	today := dates.FromTime(now)
	status := permit.Evaluate(h.PermitIssueDate, h.PermitExpiryDate, today)
	active := permit.CanActivate(status, h.Latitude, h.Longitude)

	if err := s.houses.ApplyDecision(ctx, houseID, status, active, now); err != nil {
		return nil, wrapHouseErr(err)
	}
	h.ApplyDecision(status, active, now)

	s.logger.InfoContext(ctx, "permit verified",
		"house_id", houseID,
		"permit_status", status,
		"is_active", active,
	)
	span.SetAttributes(
		attribute.String("permit.status", string(status)),
		attribute.Bool("house.active", active),
	)

	s.notifyDecision(ctx, h, status, active)
	s.emitAudit(ctx, audit.Event{
		ActorID: requestcontext.UserID(ctx),
		Subject: houseID.String(),
		Action:  audit.ActionPermitVerified,
		Reason:  string(status),
	})
	if s.metrics != nil {
		s.metrics.RecordDecision(decisionOutcome(status, active))
		s.metrics.ObserveVerify(start)
	}

	return &models.Decision{PermitStatus: status, IsActive: active}, nil
}

// Reject is the administrative override: the house is marked expired and
// deactivated no matter what its permit dates say. Re-verifying later can lift
// the rejection if the dates support it.
func (s *Service) Reject(ctx context.Context, houseID id.HouseID) (*models.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "house.Reject",
		trace.WithAttributes(attribute.String("house.id", houseID.String())))
	defer span.End()

	h, err := s.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, wrapHouseErr(err)
	}

	now := requestcontext.Now(ctx)
	if err := s.houses.ApplyDecision(ctx, houseID, permit.StatusExpired, false, now); err != nil {
		return nil, wrapHouseErr(err)
	}
	h.ApplyRejection(now)

	s.logger.InfoContext(ctx, "registration rejected", "house_id", houseID)

	s.notify(ctx, h,
		"Boarding House Registration Rejected",
		fmt.Sprintf("Your boarding house %q registration has been rejected. Please review your permit information and resubmit with valid documentation.", h.Name),
		notification.TypeWarning,
	)
	s.emitAudit(ctx, audit.Event{
		ActorID: requestcontext.UserID(ctx),
		Subject: houseID.String(),
		Action:  audit.ActionPermitRejected,
	})
	if s.metrics != nil {
		s.metrics.RecordDecision("rejected")
	}

	return &models.Decision{PermitStatus: permit.StatusExpired, IsActive: false}, nil
}

// notifyDecision picks the owner-facing message for a verification outcome.
// Three branches: approved and activated, expired, or reviewed without
// activation (valid-but-unpinned or near-expiry).
func (s *Service) notifyDecision(ctx context.Context, h *models.BoardingHouse, status permit.Status, active bool) {
	var title, message string
	var kind notification.Type

	switch {
	case active:
		title = "Boarding House Approved!"
		message = fmt.Sprintf("Your boarding house %q has been approved and is now active. You can now manage rooms and occupants.", h.Name)
		kind = notification.TypeApproval
	case status == permit.StatusExpired:
		title = "Permit Expired - Action Required"
		message = fmt.Sprintf("Your boarding house %q permit has expired. Please renew your permit to activate your listing.", h.Name)
		kind = notification.TypeWarning
	default:
		title = "Boarding House Reviewed"
		message = fmt.Sprintf("Your boarding house %q has been reviewed. Permit status: %s.", h.Name, status)
		if !h.IsPinned() {
			message += " Please add a location to activate your listing."
		}
		kind = notification.TypeInfo
	}

	s.notify(ctx, h, title, message, kind)
}

func decisionOutcome(status permit.Status, active bool) string {
	switch {
	case active:
		return "approved"
	case status == permit.StatusExpired:
		return "expired"
	default:
		return "reviewed"
	}
}

func (s *Service) notify(ctx context.Context, h *models.BoardingHouse, title, message string, kind notification.Type) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Emit(ctx, h.OwnerID, title, message, kind, h.ID.String()); err != nil {
		s.logger.WarnContext(ctx, "owner notification failed",
			"house_id", h.ID,
			"owner_id", h.OwnerID,
			"error", err,
		)
	}
}
