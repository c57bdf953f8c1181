// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibridshopp01/booking-backend/internal/events"
	"github.com/hibridshopp01/booking-backend/internal/model"
	"github.com/hibridshopp01/booking-backend/internal/repository"
)

// BookingStore is the persistence contract the service depends on.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Booking, error)
	BookedTimes(ctx context.Context, date model.Date) ([]string, error)
}

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgInvalidDate   = "Invalid date format. Use YYYY-MM-DD"
	msgInvalidStatus = "Invalid status. Must be pending, confirmed, or cancelled"
	msgDateRequired  = "Date parameter is required"
)

// BookingService orchestrates booking intake operations.
type BookingService struct {
	store     BookingStore
	publisher events.Publisher
	validate  *validator.Validate
	log       *slog.Logger
	now       func() time.Time
}

// NewBookingService constructs a BookingService with its dependencies.
// A nil publisher disables event publishing.
func NewBookingService(store BookingStore, publisher events.Publisher, log *slog.Logger) *BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BookingService{
		store:     store,
		publisher: publisher,
		validate:  newValidator(),
		log:       log,
		now:       time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Create validates the request and persists a new pending booking.
func (s *BookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.PreferredDate = strings.TrimSpace(req.PreferredDate)
	req.PreferredTime = strings.TrimSpace(req.PreferredTime)

	if err := s.validate.Struct(req); err != nil {
		return nil, translate(err)
	}

	date, err := model.ParseDate(req.PreferredDate)
	if err != nil {
		return nil, &ValidationError{Field: "preferred_date", Message: msgInvalidDate}
	}

	b := &model.Booking{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		PreferredDate: date,
		PreferredTime: req.PreferredTime,
		Message:       req.Message,
		DogID:         req.DogID,
		DogName:       req.DogName,
		Status:        model.StatusPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("booking created",
		"booking_id", b.ID,
		"preferred_date", b.PreferredDate.String(),
		"preferred_time", b.PreferredTime,
	)
	s.publish(ctx, events.TypeBookingCreated, b)
	return b, nil
}

// List returns all bookings, newest first.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// Get returns a single booking by ID.
func (s *BookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// UpdateStatus moves a booking to the requested status. Only the status
// field is ever changed.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, req model.UpdateStatusRequest) (*model.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Field: "status", Message: msgInvalidStatus}
	}

	b, err := s.store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("booking status updated", "booking_id", b.ID, "status", b.Status)
	s.publish(ctx, events.TypeBookingStatusChanged, b)
	return b, nil
}

// Availability reports which catalog slots remain open on the given day.
func (s *BookingService) Availability(ctx context.Context, date string) (*model.Availability, error) {
	if date == "" {
		return nil, &ValidationError{Field: "date", Message: msgDateRequired}
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: msgInvalidDate}
	}

	booked, err := s.store.BookedTimes(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	if booked == nil {
		booked = []string{}
	}

	return &model.Availability{
		Date:           date,
		AvailableTimes: AvailableTimes(model.SlotCatalog, booked),
		BookedTimes:    booked,
	}, nil
}

// publish is best effort: the booking is already committed, so a delivery
// failure is logged rather than returned.
func (s *BookingService) publish(ctx context.Context, t events.Type, b *model.Booking) {
	if err := s.publisher.Publish(ctx, events.NewEvent(t, *b)); err != nil {
		s.log.Error("publish booking event",
			"booking_id", b.ID,
			"event_type", t,
			"error", err,
		)
	}
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{
			Field:   fe.Field(),
			Message: "Missing required field: " + fe.Field(),
		}
	default:
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is invalid", fe.Field()),
		}
	}
}
