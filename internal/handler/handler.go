// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hibridshopp01/booking-backend/internal/model"
	"github.com/hibridshopp01/booking-backend/internal/repository"
	"github.com/hibridshopp01/booking-backend/internal/service"
)

// BookingHandler holds all HTTP handlers for the booking API.
type BookingHandler struct {
	svc *service.BookingService
	log *slog.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService, log *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the full route tree with the global middleware stack.
func NewRouter(h *BookingHandler, health Pinger, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(CORS)

	r.Get("/health", HealthCheck(health))

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/available-times", h.AvailableTimes)
		r.Get("/{id}", h.GetBooking)
		r.Put("/{id}/status", h.UpdateStatus)
	})

	return r
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// bookingID parses the {id} path segment. Non-numeric IDs cannot name a
// booking, so they are reported as not found.
func bookingID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeServiceError maps service and repository errors to HTTP responses.
func (h *BookingHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
	default:
		h.log.Error(op+" failed",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "create booking")
		return
	}

	writeJSON(w, http.StatusCreated, model.BookingResponse{
		Message: "Booking created successfully",
		Booking: booking,
	})
}

// ListBookings handles GET /bookings
// Returns a JSON array of all bookings, newest first.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "list bookings")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	booking, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "get booking")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// UpdateStatus handles PUT /bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	var req model.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err, "update booking status")
		return
	}

	writeJSON(w, http.StatusOK, model.BookingResponse{
		Message: "Booking status updated successfully",
		Booking: booking,
	})
}

// AvailableTimes handles GET /bookings/available-times?date=YYYY-MM-DD
func (h *BookingHandler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	availability, err := h.svc.Availability(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeServiceError(w, r, err, "get available times")
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
