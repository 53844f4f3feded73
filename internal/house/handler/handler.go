package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bahay/internal/house/models"
	"bahay/internal/permit"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/httputil"
	"bahay/pkg/requestcontext"
)

const roleAdmin = "admin"

// Service defines the boarding-house operations the handler needs.
type Service interface {
	Register(ctx context.Context, ownerID id.UserID, req *models.RegisterRequest) (*models.BoardingHouse, error)
	Get(ctx context.Context, houseID id.HouseID) (*models.BoardingHouse, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.BoardingHouse, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.BoardingHouse, error)
	Update(ctx context.Context, houseID id.HouseID, req *models.UpdateRequest) (*models.BoardingHouse, error)
	PinLocation(ctx context.Context, houseID id.HouseID, req *models.PinLocationRequest) (*models.BoardingHouse, error)
	Delete(ctx context.Context, houseID id.HouseID) error
	Verify(ctx context.Context, houseID id.HouseID) (*models.Decision, error)
	Reject(ctx context.Context, houseID id.HouseID) (*models.Decision, error)
}

// Handler wires boarding-house endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a boarding-house handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts boarding-house endpoints on the router. The router group is
// expected to run the auth middleware; admin-only endpoints re-check the role.
func (h *Handler) Register(r chi.Router) {
	r.Route("/boarding-houses", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleRegister)
		r.Route("/{houseID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Put("/", h.HandleUpdate)
			r.Delete("/", h.HandleDelete)
			r.Put("/location", h.HandlePinLocation)
			r.Post("/verify", h.HandleVerify)
			r.Post("/reject", h.HandleReject)
		})
	})
}

// HandleRegister handles POST /boarding-houses.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	ownerID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	house, err := h.service.Register(ctx, ownerID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestID,
			"owner_id", ownerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "boarding house registered",
		"request_id", requestID,
		"house_id", house.ID,
		"owner_id", ownerID,
	)
	httputil.WriteJSON(w, http.StatusCreated, house)
}

// HandleList handles GET /boarding-houses. Admins see every registration,
// filtered by the query parameters; owners see only their own.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	if requestcontext.UserRole(ctx) != roleAdmin {
		houses, err := h.service.ListByOwner(ctx, userID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, houses)
		return
	}

	filter := models.ListFilter{
		Barangay: r.URL.Query().Get("barangay"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := permit.ParseStatus(raw)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown permit status"))
			return
		}
		filter.Status = status
	}

	houses, err := h.service.List(ctx, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, houses)
}

// HandleGet handles GET /boarding-houses/{houseID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	houseID, ok := h.houseID(w, r)
	if !ok {
		return
	}

	house, err := h.service.Get(ctx, houseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !h.mayManage(w, ctx, house.OwnerID) {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, house)
}

// HandleUpdate handles PUT /boarding-houses/{houseID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	houseID, ok := h.houseID(w, r)
	if !ok {
		return
	}
	if !h.mayManageHouse(w, ctx, houseID) {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	house, err := h.service.Update(ctx, houseID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, house)
}

// HandlePinLocation handles PUT /boarding-houses/{houseID}/location.
func (h *Handler) HandlePinLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	houseID, ok := h.houseID(w, r)
	if !ok {
		return
	}
	if !h.mayManageHouse(w, ctx, houseID) {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.PinLocationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	house, err := h.service.PinLocation(ctx, houseID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, house)
}

// HandleDelete handles DELETE /boarding-houses/{houseID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	houseID, ok := h.houseID(w, r)
	if !ok {
		return
	}
	if !h.mayManageHouse(w, ctx, houseID) {
		return
	}

	if err := h.service.Delete(ctx, houseID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerify handles POST /boarding-houses/{houseID}/verify (admin only).
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "permit verification", h.service.Verify)
}

// HandleReject handles POST /boarding-houses/{houseID}/reject (admin only).
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "registration rejection", h.service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op string, call func(context.Context, id.HouseID) (*models.Decision, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	if _, ok := h.requireUser(w, ctx); !ok {
		return
	}
	if requestcontext.UserRole(ctx) != roleAdmin {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}

	houseID, ok := h.houseID(w, r)
	if !ok {
		return
	}

	decision, err := call(ctx, houseID)
	if err != nil {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", requestID,
			"house_id", houseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, op+" completed",
		"request_id", requestID,
		"house_id", houseID,
		"permit_status", decision.PermitStatus,
		"is_active", decision.IsActive,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, decision)
}

func (h *Handler) houseID(w http.ResponseWriter, r *http.Request) (id.HouseID, bool) {
	houseID, err := id.ParseHouseID(chi.URLParam(r, "houseID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid boarding house id"))
		return id.HouseID{}, false
	}
	return houseID, true
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (id.UserID, bool) {
	userID := requestcontext.UserID(ctx)
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

// mayManage authorizes a caller against a house owner: admins always pass,
// owners only for their own registrations.
func (h *Handler) mayManage(w http.ResponseWriter, ctx context.Context, ownerID id.UserID) bool {
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return false
	}
	if requestcontext.UserRole(ctx) == roleAdmin || userID == ownerID {
		return true
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "not your boarding house"))
	return false
}

func (h *Handler) mayManageHouse(w http.ResponseWriter, ctx context.Context, houseID id.HouseID) bool {
	house, err := h.service.Get(ctx, houseID)
	if err != nil {
		httputil.WriteError(w, err)
		return false
	}
	return h.mayManage(w, ctx, house.OwnerID)
}
