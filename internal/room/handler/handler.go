package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bahay/internal/room"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/httputil"
	"bahay/pkg/requestcontext"
)

// Service defines the room operations the handler needs.
type Service interface {
	CreateRoom(ctx context.Context, req *room.CreateRoomRequest) (*room.Room, error)
	ListRooms(ctx context.Context, houseID id.HouseID) ([]*room.Room, error)
	DeleteRoom(ctx context.Context, roomID id.RoomID) error
	AddOccupant(ctx context.Context, req *room.CreateOccupantRequest) (*room.Occupant, error)
	ListOccupants(ctx context.Context, roomID id.RoomID) ([]*room.Occupant, error)
	UpdateOccupant(ctx context.Context, occupantID id.OccupantID, req *room.UpdateOccupantRequest) (*room.Occupant, error)
	RemoveOccupant(ctx context.Context, occupantID id.OccupantID) error
	HouseOccupancy(ctx context.Context, houseID id.HouseID) (*room.Occupancy, error)
}

// Handler wires room and occupant endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts room and occupant endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.HandleListRooms)
		r.Post("/", h.HandleCreateRoom)
		r.Get("/occupancy", h.HandleOccupancy)
		r.Delete("/{roomID}", h.HandleDeleteRoom)
	})
	r.Route("/occupants", func(r chi.Router) {
		r.Get("/", h.HandleListOccupants)
		r.Post("/", h.HandleAddOccupant)
		r.Put("/{occupantID}", h.HandleUpdateOccupant)
		r.Delete("/{occupantID}", h.HandleRemoveOccupant)
	})
}

// HandleCreateRoom handles POST /rooms.
func (h *Handler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if !h.requireUser(w, ctx) {
		return
	}
	req, ok := httputil.DecodeAndPrepare[room.CreateRoomRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.CreateRoom(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleListRooms handles GET /rooms?boarding_house_id=...
func (h *Handler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.requireUser(w, ctx) {
		return
	}
	houseID, ok := h.queryHouseID(w, r)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(ctx, houseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rooms)
}

// HandleOccupancy handles GET /rooms/occupancy?boarding_house_id=...
func (h *Handler) HandleOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.requireUser(w, ctx) {
		return
	}
	houseID, ok := h.queryHouseID(w, r)
	if !ok {
		return
	}

	totals, err := h.service.HouseOccupancy(ctx, houseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totals)
}

// HandleDeleteRoom handles DELETE /rooms/{roomID}.
func (h *Handler) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.requireUser(w, ctx) {
		return
	}
	roomID, err := id.ParseRoomID(chi.URLParam(r, "roomID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid room id"))
		return
	}

	if err := h.service.DeleteRoom(ctx, roomID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddOccupant handles POST /occupants.
func (h *Handler) HandleAddOccupant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if !h.requireUser(w, ctx) {
		return
	}
	req, ok := httputil.DecodeAndPrepare[room.CreateOccupantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.AddOccupant(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleListOccupants handles GET /occupants?room_id=...
func (h *Handler) HandleListOccupants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.requireUser(w, ctx) {
		return
	}
	roomID, err := id.ParseRoomID(r.URL.Query().Get("room_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "room_id query parameter is required"))
		return
	}

	occupants, err := h.service.ListOccupants(ctx, roomID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, occupants)
}

// HandleUpdateOccupant handles PUT /occupants/{occupantID}.
func (h *Handler) HandleUpdateOccupant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if !h.requireUser(w, ctx) {
		return
	}
	occupantID, err := id.ParseOccupantID(chi.URLParam(r, "occupantID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid occupant id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[room.UpdateOccupantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.UpdateOccupant(ctx, occupantID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleRemoveOccupant handles DELETE /occupants/{occupantID}.
func (h *Handler) HandleRemoveOccupant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.requireUser(w, ctx) {
		return
	}
	occupantID, err := id.ParseOccupantID(chi.URLParam(r, "occupantID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid occupant id"))
		return
	}

	if err := h.service.RemoveOccupant(ctx, occupantID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) queryHouseID(w http.ResponseWriter, r *http.Request) (id.HouseID, bool) {
	houseID, err := id.ParseHouseID(r.URL.Query().Get("boarding_house_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "boarding_house_id query parameter is required"))
		return id.HouseID{}, false
	}
	return houseID, true
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) bool {
	if requestcontext.UserID(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return false
	}
	return true
}
