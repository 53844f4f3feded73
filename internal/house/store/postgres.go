package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"bahay/internal/house/models"
	"bahay/internal/permit"
	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var houseColumns = []string{
	"id", "owner_id", "name", "barangay", "address", "contact_number",
	"permit_number", "permit_issue_date", "permit_expiry_date", "permit_document",
	"latitude", "longitude", "price_min", "price_max", "gender_accommodation",
	"permit_status", "is_active", "created_at", "updated_at",
}

// Postgres persists boarding houses.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, h *models.BoardingHouse) error {
	query, args, err := psql.Insert("boarding_houses").
		Columns(houseColumns...).
		Values(
			h.ID.String(), h.OwnerID.String(), h.Name, h.Barangay, h.Address,
			h.ContactNumber, h.PermitNumber, h.PermitIssueDate.String(),
			h.PermitExpiryDate.String(), h.PermitDocument,
			h.Latitude, h.Longitude, h.PriceMin, h.PriceMax, h.GenderAccommodation,
			string(h.PermitStatus), h.IsActive, h.CreatedAt, h.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create house query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create house: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, houseID id.HouseID) (*models.BoardingHouse, error) {
	query, args, err := psql.Select(houseColumns...).
		From("boarding_houses").
		Where(sq.Eq{"id": houseID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find house query: %w", err)
	}
	h, err := scanHouse(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Postgres) List(ctx context.Context, filter models.ListFilter) ([]*models.BoardingHouse, error) {
	builder := psql.Select(houseColumns...).
		From("boarding_houses").
		OrderBy("created_at DESC")
	if filter.Barangay != "" {
		builder = builder.Where(sq.Eq{"barangay": filter.Barangay})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"permit_status": string(filter.Status)})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"address": like},
		})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list houses query: %w", err)
	}
	return s.queryHouses(ctx, query, args...)
}

func (s *Postgres) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.BoardingHouse, error) {
	query, args, err := psql.Select(houseColumns...).
		From("boarding_houses").
		Where(sq.Eq{"owner_id": ownerID.String()}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list by owner query: %w", err)
	}
	return s.queryHouses(ctx, query, args...)
}

func (s *Postgres) Update(ctx context.Context, h *models.BoardingHouse) error {
	query, args, err := psql.Update("boarding_houses").
		Set("name", h.Name).
		Set("barangay", h.Barangay).
		Set("address", h.Address).
		Set("contact_number", h.ContactNumber).
		Set("permit_number", h.PermitNumber).
		Set("permit_issue_date", h.PermitIssueDate.String()).
		Set("permit_expiry_date", h.PermitExpiryDate.String()).
		Set("permit_document", h.PermitDocument).
		Set("latitude", h.Latitude).
		Set("longitude", h.Longitude).
		Set("price_min", h.PriceMin).
		Set("price_max", h.PriceMax).
		Set("gender_accommodation", h.GenderAccommodation).
		Set("updated_at", h.UpdatedAt).
		Where(sq.Eq{"id": h.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update house query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update house: %w", err)
	}
	return requireRow(res, "update house")
}

// ApplyDecision writes only the compliance fields. Owner edits racing a
// verification keep their own columns; last decision wins on status.
func (s *Postgres) ApplyDecision(ctx context.Context, houseID id.HouseID, status permit.Status, active bool, updatedAt time.Time) error {
	query, args, err := psql.Update("boarding_houses").
		Set("permit_status", string(status)).
		Set("is_active", active).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": houseID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build apply decision query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply decision: %w", err)
	}
	return requireRow(res, "apply decision")
}

// Exists satisfies the room module's house lookup.
func (s *Postgres) Exists(ctx context.Context, houseID id.HouseID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM boarding_houses WHERE id = $1)`
	if err := s.db.QueryRowContext(ctx, query, houseID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("house exists: %w", err)
	}
	return exists, nil
}

func (s *Postgres) Delete(ctx context.Context, houseID id.HouseID) error {
	query, args, err := psql.Delete("boarding_houses").
		Where(sq.Eq{"id": houseID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete house query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete house: %w", err)
	}
	return requireRow(res, "delete house")
}

func (s *Postgres) queryHouses(ctx context.Context, query string, args ...any) ([]*models.BoardingHouse, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	defer rows.Close()

	var out []*models.BoardingHouse
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHouse(row rowScanner) (*models.BoardingHouse, error) {
	var h models.BoardingHouse
	var rawID, rawOwner, rawStatus string
	var issue, expiry time.Time
	err := row.Scan(
		&rawID, &rawOwner, &h.Name, &h.Barangay, &h.Address, &h.ContactNumber,
		&h.PermitNumber, &issue, &expiry, &h.PermitDocument,
		&h.Latitude, &h.Longitude, &h.PriceMin, &h.PriceMax, &h.GenderAccommodation,
		&rawStatus, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan house: %w", err)
	}
	houseID, err := id.ParseHouseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan house id: %w", err)
	}
	ownerID, err := id.ParseUserID(rawOwner)
	if err != nil {
		return nil, fmt.Errorf("scan house owner: %w", err)
	}
	status, ok := permit.ParseStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("scan house: unknown permit status %q", rawStatus)
	}
	h.ID = houseID
	h.OwnerID = ownerID
	h.PermitIssueDate = dates.FromTime(issue)
	h.PermitExpiryDate = dates.FromTime(expiry)
	h.PermitStatus = status
	return &h, nil
}

func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
