package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bahay/internal/notification"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/httputil"
	"bahay/pkg/requestcontext"
)

// Service defines the notification operations the handler needs.
type Service interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*notification.Notification, error)
	UnreadCount(ctx context.Context, userID id.UserID) (int, error)
	MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error
	MarkAllRead(ctx context.Context, userID id.UserID) error
}

// Handler wires the notification surface to the service. Creation has no
// endpoint; notifications are emitted by workflows only.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts notification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/read", h.HandleMarkRead)
		r.Post("/read-all", h.HandleMarkAllRead)
	})
}

// HandleList handles GET /notifications. With ?count_only=true it returns just
// the unread counter for the bell widget.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	if r.URL.Query().Get("count_only") == "true" {
		count, err := h.service.UnreadCount(ctx, userID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]int{"unread": count})
		return
	}

	list, err := h.service.ListByUser(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

type markReadRequest struct {
	ID string `json:"id"`
}

func (r *markReadRequest) Validate() error {
	if r.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "notification id is required")
	}
	return nil
}

// HandleMarkRead handles POST /notifications/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[markReadRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	notifID, err := id.ParseNotificationID(req.ID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}

	if err := h.service.MarkRead(ctx, userID, notifID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMarkAllRead handles POST /notifications/read-all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	if err := h.service.MarkAllRead(ctx, userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (id.UserID, bool) {
	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}
