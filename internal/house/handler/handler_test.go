package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahay/internal/house/models"
	"bahay/internal/house/service"
	"bahay/internal/house/store"
	id "bahay/pkg/domain"
	"bahay/pkg/requestcontext"
)

var handlerDay = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router  chi.Router
	service *service.Service
	ownerID id.UserID
	adminID id.UserID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), logger)

	r := chi.NewRouter()
	New(svc, logger).Register(r)

	return &testEnv{
		router:  r,
		service: svc,
		ownerID: id.NewUserID(),
		adminID: id.NewUserID(),
	}
}

func (e *testEnv) do(method, path string, body any, userID id.UserID, role string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)

	ctx := requestcontext.WithTime(req.Context(), handlerDay)
	if !userID.IsZero() {
		ctx = requestcontext.WithUserID(ctx, userID)
		ctx = requestcontext.WithUserRole(ctx, role)
	}
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerHouse(t *testing.T, pinned bool, daysToExpiry int) *models.BoardingHouse {
	t.Helper()
	expiry := handlerDay.AddDate(0, 0, daysToExpiry)
	req := &models.RegisterRequest{
		Name:             "Lola's Place",
		Barangay:         "Poblacion",
		Address:          "88 Rizal Ave",
		ContactNumber:    "09181234567",
		PermitNumber:     fmt.Sprintf("BP-%v-%d", pinned, daysToExpiry),
		PermitIssueDate:  expiry.AddDate(-1, 0, 0).Format("2006-01-02"),
		PermitExpiryDate: expiry.Format("2006-01-02"),
	}
	if pinned {
		lat, lng := 7.0731, 125.6128
		req.Latitude = &lat
		req.Longitude = &lng
	}
	ctx := requestcontext.WithTime(context.Background(), handlerDay)
	h, err := e.service.Register(ctx, e.ownerID, req)
	require.NoError(t, err)
	return h
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHandleRegister(t *testing.T) {
	env := newTestEnv(t)

	body := models.RegisterRequest{
		Name:             "Lola's Place",
		Barangay:         "Poblacion",
		Address:          "88 Rizal Ave",
		ContactNumber:    "09181234567",
		PermitNumber:     "BP-2026-100",
		PermitIssueDate:  "2026-01-01",
		PermitExpiryDate: "2027-01-01",
	}

	w := env.do(http.MethodPost, "/boarding-houses", body, env.ownerID, "owner")
	require.Equal(t, http.StatusCreated, w.Code)

	house := decodeBody[models.BoardingHouse](t, w)
	assert.Equal(t, "Lola's Place", house.Name)
	assert.Equal(t, "pending", string(house.PermitStatus))
	assert.False(t, house.IsActive)
}

func TestHandleRegisterRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/boarding-houses", models.RegisterRequest{}, id.UserID{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleRegisterValidationError(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/boarding-houses", models.RegisterRequest{Name: "x"}, env.ownerID, "owner")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleVerifyRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHouse(t, true, 45)

	w := env.do(http.MethodPost, "/boarding-houses/"+h.ID.String()+"/verify", nil, env.ownerID, "owner")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleVerify(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHouse(t, true, 45)

	w := env.do(http.MethodPost, "/boarding-houses/"+h.ID.String()+"/verify", nil, env.adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code)

	decision := decodeBody[models.Decision](t, w)
	assert.Equal(t, "valid", string(decision.PermitStatus))
	assert.True(t, decision.IsActive)
}

func TestHandleVerifyUnknownHouse(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/boarding-houses/"+id.NewHouseID().String()+"/verify", nil, env.adminID, "admin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleVerifyMalformedID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/boarding-houses/not-a-uuid/verify", nil, env.adminID, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleReject(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHouse(t, true, 45)

	w := env.do(http.MethodPost, "/boarding-houses/"+h.ID.String()+"/reject", nil, env.adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code)

	decision := decodeBody[models.Decision](t, w)
	assert.Equal(t, "expired", string(decision.PermitStatus))
	assert.False(t, decision.IsActive)
}

func TestHandleListByRole(t *testing.T) {
	env := newTestEnv(t)
	env.registerHouse(t, true, 45)

	otherOwner := id.NewUserID()
	ctx := requestcontext.WithTime(context.Background(), handlerDay)
	_, err := env.service.Register(ctx, otherOwner, &models.RegisterRequest{
		Name:             "Kubo Haus",
		Barangay:         "Talomo",
		Address:          "5 Acacia St",
		ContactNumber:    "09221234567",
		PermitNumber:     "BP-2026-200",
		PermitIssueDate:  "2026-01-01",
		PermitExpiryDate: "2027-01-01",
	})
	require.NoError(t, err)

	// Owner sees only their own registration.
	w := env.do(http.MethodGet, "/boarding-houses", nil, env.ownerID, "owner")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]*models.BoardingHouse](t, w), 1)

	// Admin sees everything.
	w = env.do(http.MethodGet, "/boarding-houses", nil, env.adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]*models.BoardingHouse](t, w), 2)

	// Admin filter by barangay.
	w = env.do(http.MethodGet, "/boarding-houses?barangay=Talomo", nil, env.adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]*models.BoardingHouse](t, w), 1)

	// Unknown status filter is rejected.
	w = env.do(http.MethodGet, "/boarding-houses?status=bogus", nil, env.adminID, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateOwnershipCheck(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHouse(t, true, 45)

	name := "Renamed"
	stranger := id.NewUserID()
	w := env.do(http.MethodPut, "/boarding-houses/"+h.ID.String(), models.UpdateRequest{Name: &name}, stranger, "owner")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPut, "/boarding-houses/"+h.ID.String(), models.UpdateRequest{Name: &name}, env.ownerID, "owner")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decodeBody[models.BoardingHouse](t, w).Name)
}

func TestHandlePinLocationThenDelete(t *testing.T) {
	env := newTestEnv(t)
	h := env.registerHouse(t, false, 45)

	w := env.do(http.MethodPut, "/boarding-houses/"+h.ID.String()+"/location",
		models.PinLocationRequest{Latitude: 7.07, Longitude: 125.61}, env.ownerID, "owner")
	require.Equal(t, http.StatusOK, w.Code)
	pinned := decodeBody[models.BoardingHouse](t, w)
	require.NotNil(t, pinned.Latitude)
	assert.False(t, pinned.IsActive, "pinning alone never activates")

	w = env.do(http.MethodDelete, "/boarding-houses/"+h.ID.String(), nil, env.ownerID, "owner")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/boarding-houses/"+h.ID.String(), nil, env.ownerID, "owner")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
