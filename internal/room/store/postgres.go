package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bahay/internal/room"
	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// Postgres persists rooms and occupants. Occupant rows cascade on room
// deletion via the schema's foreign key.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateRoom(ctx context.Context, r *room.Room) error {
	query := `
		INSERT INTO rooms (id, boarding_house_id, name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID.String(), r.BoardingHouseID.String(), r.Name, r.Capacity, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (s *Postgres) FindRoom(ctx context.Context, roomID id.RoomID) (*room.Room, error) {
	query := `
		SELECT id, boarding_house_id, name, capacity, created_at, updated_at
		FROM rooms WHERE id = $1
	`
	r, err := scanRoom(s.db.QueryRowContext(ctx, query, roomID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Postgres) ListRoomsByHouse(ctx context.Context, houseID id.HouseID) ([]*room.Room, error) {
	query := `
		SELECT id, boarding_house_id, name, capacity, created_at, updated_at
		FROM rooms WHERE boarding_house_id = $1
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, houseID.String())
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var out []*room.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteRoom(ctx context.Context, roomID id.RoomID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID.String())
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) CreateOccupant(ctx context.Context, o *room.Occupant) error {
	query := `
		INSERT INTO occupants (id, room_id, name, contact_number, move_in_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		o.ID.String(), o.RoomID.String(), o.Name, o.ContactNumber,
		o.MoveInDate.String(), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create occupant: %w", err)
	}
	return nil
}

func (s *Postgres) FindOccupant(ctx context.Context, occupantID id.OccupantID) (*room.Occupant, error) {
	query := `
		SELECT id, room_id, name, contact_number, move_in_date, created_at, updated_at
		FROM occupants WHERE id = $1
	`
	o, err := scanOccupant(s.db.QueryRowContext(ctx, query, occupantID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Postgres) ListOccupantsByRoom(ctx context.Context, roomID id.RoomID) ([]*room.Occupant, error) {
	query := `
		SELECT id, room_id, name, contact_number, move_in_date, created_at, updated_at
		FROM occupants WHERE room_id = $1
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, roomID.String())
	if err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}
	defer rows.Close()

	var out []*room.Occupant
	for rows.Next() {
		o, err := scanOccupant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Postgres) CountOccupantsByRoom(ctx context.Context, roomID id.RoomID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM occupants WHERE room_id = $1`
	if err := s.db.QueryRowContext(ctx, query, roomID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count occupants: %w", err)
	}
	return count, nil
}

func (s *Postgres) UpdateOccupant(ctx context.Context, o *room.Occupant) error {
	query := `
		UPDATE occupants
		SET name = $2, contact_number = $3, move_in_date = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		o.ID.String(), o.Name, o.ContactNumber, o.MoveInDate.String(), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update occupant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update occupant: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteOccupant(ctx context.Context, occupantID id.OccupantID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM occupants WHERE id = $1`, occupantID.String())
	if err != nil {
		return fmt.Errorf("delete occupant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete occupant: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*room.Room, error) {
	var r room.Room
	var rawID, rawHouse string
	if err := row.Scan(&rawID, &rawHouse, &r.Name, &r.Capacity, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan room: %w", err)
	}
	roomID, err := id.ParseRoomID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan room id: %w", err)
	}
	houseID, err := id.ParseHouseID(rawHouse)
	if err != nil {
		return nil, fmt.Errorf("scan room house: %w", err)
	}
	r.ID = roomID
	r.BoardingHouseID = houseID
	return &r, nil
}

func scanOccupant(row rowScanner) (*room.Occupant, error) {
	var o room.Occupant
	var rawID, rawRoom string
	var moveIn time.Time
	if err := row.Scan(&rawID, &rawRoom, &o.Name, &o.ContactNumber, &moveIn, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan occupant: %w", err)
	}
	occupantID, err := id.ParseOccupantID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan occupant id: %w", err)
	}
	roomID, err := id.ParseRoomID(rawRoom)
	if err != nil {
		return nil, fmt.Errorf("scan occupant room: %w", err)
	}
	o.ID = occupantID
	o.RoomID = roomID
	o.MoveInDate = dates.FromTime(moveIn)
	return &o, nil
}
