// Package model defines the core domain types for the booking intake service.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of a preferred date.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// BlocksSlot reports whether a booking in this status occupies its time slot.
func (s Status) BlocksSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// SlotCatalog is the fixed, ordered list of daily appointment times.
var SlotCatalog = []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM", "6:00 PM"}

// Date is a calendar date without a time-of-day component.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal compares calendar dates only.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// MarshalJSON renders the date as an ISO string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts an ISO date string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// Booking is a single appointment request.
type Booking struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email"`
	PreferredDate Date      `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Message       *string   `json:"message"`
	DogID         *int64    `json:"dog_id"`
	DogName       *string   `json:"dog_name"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBookingRequest is the payload for submitting a booking request.
type CreateBookingRequest struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         *string `json:"email"`
	PreferredDate string  `json:"preferred_date" validate:"required"`
	PreferredTime string  `json:"preferred_time" validate:"required"`
	Message       *string `json:"message"`
	DogID         *int64  `json:"dog_id"`
	DogName       *string `json:"dog_name"`
}

// UpdateStatusRequest is the payload for transitioning a booking's status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"oneof=pending confirmed cancelled"`
}

// Availability lists the open and taken slots of a single day.
type Availability struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
	BookedTimes    []string `json:"booked_times"`
}

// BookingResponse wraps a booking with a human-readable outcome.
type BookingResponse struct {
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
