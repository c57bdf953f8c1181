// Package repository implements persistence for booking requests.
// The Postgres implementation uses pgx directly (no ORM).
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibridshopp01/booking-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested booking does not exist.
var ErrNotFound = errors.New("not found")

const bookingColumns = `id, name, phone, email, preferred_date, preferred_time,
	message, dog_id, dog_name, status, created_at`

// BookingRepository handles persistence for bookings in PostgreSQL.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts b inside a transaction and fills in its generated ID.
// Nothing is persisted unless the commit succeeds.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (name, phone, email, preferred_date, preferred_time,
		                       message, dog_id, dog_name, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		b.Name, b.Phone, b.Email, b.PreferredDate.Time, b.PreferredTime,
		b.Message, b.DogID, b.DogName, string(b.Status), b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID returns a single booking or ErrNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// List returns all bookings, most recently created first.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateStatus sets the status of a booking and returns the updated record.
// The single UPDATE statement is atomic on its own.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Booking, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2
		 RETURNING `+bookingColumns,
		string(status), id,
	)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return b, nil
}

// BookedTimes returns the preferred times of every pending or confirmed
// booking on date, in insertion order. Duplicates are kept.
func (r *BookingRepository) BookedTimes(ctx context.Context, date model.Date) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT preferred_time
		 FROM bookings
		 WHERE preferred_date = $1 AND status IN ($2, $3)
		 ORDER BY id ASC`,
		date.Time, string(model.StatusPending), string(model.StatusConfirmed),
	)
	if err != nil {
		return nil, fmt.Errorf("query booked times: %w", err)
	}
	defer rows.Close()

	times, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan booked times: %w", err)
	}
	return times, nil
}

// Ping reports whether the database is reachable.
func (r *BookingRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		b      model.Booking
		status string
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.Phone, &b.Email, &b.PreferredDate.Time, &b.PreferredTime,
		&b.Message, &b.DogID, &b.DogName, &status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = model.Status(status)
	b.PreferredDate = model.NewDate(b.PreferredDate.Time)
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}
