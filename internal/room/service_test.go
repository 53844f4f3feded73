package room_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahay/internal/room"
	"bahay/internal/room/store"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
)

type fakeHouses struct {
	known map[id.HouseID]bool
}

func (f *fakeHouses) Exists(_ context.Context, houseID id.HouseID) (bool, error) {
	return f.known[houseID], nil
}

func newTestService(t *testing.T) (*room.Service, id.HouseID) {
	t.Helper()
	houseID := id.NewHouseID()
	houses := &fakeHouses{known: map[id.HouseID]bool{houseID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return room.New(store.NewInMemory(), houses, logger), houseID
}

func createRoom(t *testing.T, svc *room.Service, houseID id.HouseID, name string, capacity int) *room.Room {
	t.Helper()
	r, err := svc.CreateRoom(context.Background(), &room.CreateRoomRequest{
		BoardingHouseID: houseID.String(),
		Name:            name,
		Capacity:        capacity,
	})
	require.NoError(t, err)
	return r
}

func addOccupant(t *testing.T, svc *room.Service, roomID id.RoomID, name string) *room.Occupant {
	t.Helper()
	o, err := svc.AddOccupant(context.Background(), &room.CreateOccupantRequest{
		RoomID:        roomID.String(),
		Name:          name,
		ContactNumber: "09170000001",
		MoveInDate:    "2026-02-01",
	})
	require.NoError(t, err)
	return o
}

func TestCreateRoomValidation(t *testing.T) {
	svc, houseID := newTestService(t)

	tests := []struct {
		name string
		req  room.CreateRoomRequest
	}{
		{"missing house", room.CreateRoomRequest{Name: "Room 1", Capacity: 2}},
		{"missing name", room.CreateRoomRequest{BoardingHouseID: houseID.String(), Capacity: 2}},
		{"zero capacity", room.CreateRoomRequest{BoardingHouseID: houseID.String(), Name: "Room 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRoom(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestCreateRoomUnknownHouse(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRoom(context.Background(), &room.CreateRoomRequest{
		BoardingHouseID: id.NewHouseID().String(),
		Name:            "Room 1",
		Capacity:        2,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRoomCapacityEnforced(t *testing.T) {
	svc, houseID := newTestService(t)
	r := createRoom(t, svc, houseID, "Room 1", 2)

	addOccupant(t, svc, r.ID, "Ana")
	addOccupant(t, svc, r.ID, "Ben")

	_, err := svc.AddOccupant(context.Background(), &room.CreateOccupantRequest{
		RoomID:        r.ID.String(),
		Name:          "Carlo",
		ContactNumber: "09170000003",
		MoveInDate:    "2026-02-15",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestAddOccupantMalformedMoveInDate(t *testing.T) {
	svc, houseID := newTestService(t)
	r := createRoom(t, svc, houseID, "Room 1", 2)

	_, err := svc.AddOccupant(context.Background(), &room.CreateOccupantRequest{
		RoomID:        r.ID.String(),
		Name:          "Ana",
		ContactNumber: "09170000001",
		MoveInDate:    "Feb 1, 2026",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUpdateOccupantMalformedMoveInDate(t *testing.T) {
	svc, houseID := newTestService(t)
	r := createRoom(t, svc, houseID, "Room 1", 2)
	o := addOccupant(t, svc, r.ID, "Ana")

	moveIn := "03/01/2026"
	_, err := svc.UpdateOccupant(context.Background(), o.ID, &room.UpdateOccupantRequest{
		MoveInDate: &moveIn,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUpdateOccupant(t *testing.T) {
	svc, houseID := newTestService(t)
	r := createRoom(t, svc, houseID, "Room 1", 2)
	o := addOccupant(t, svc, r.ID, "Ana")

	name := "Ana Santos"
	moveIn := "2026-03-01"
	updated, err := svc.UpdateOccupant(context.Background(), o.ID, &room.UpdateOccupantRequest{
		Name:       &name,
		MoveInDate: &moveIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Santos", updated.Name)
	assert.Equal(t, "2026-03-01", updated.MoveInDate.String())
}

func TestDeleteRoomCascadesOccupants(t *testing.T) {
	svc, houseID := newTestService(t)
	r := createRoom(t, svc, houseID, "Room 1", 4)
	o := addOccupant(t, svc, r.ID, "Ana")

	require.NoError(t, svc.DeleteRoom(context.Background(), r.ID))

	err := svc.RemoveOccupant(context.Background(), o.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestHouseOccupancyTotals(t *testing.T) {
	svc, houseID := newTestService(t)
	r1 := createRoom(t, svc, houseID, "Room 1", 2)
	createRoom(t, svc, houseID, "Room 2", 3)
	addOccupant(t, svc, r1.ID, "Ana")
	addOccupant(t, svc, r1.ID, "Ben")

	totals, err := svc.HouseOccupancy(context.Background(), houseID)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Rooms)
	assert.Equal(t, 5, totals.Capacity)
	assert.Equal(t, 2, totals.Occupants)
}
