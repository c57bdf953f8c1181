package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hibridshopp01/booking-backend/internal/model"
)

// MemoryRepository keeps bookings in process memory. Writes are serialized
// by a mutex, and callers always receive copies.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	bookings []model.Booking
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Create(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, cloneBooking(*b))
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	b := cloneBooking(r.bookings[i])
	return &b, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Booking, error) {
	r.mu.RLock()
	out := make([]model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, cloneBooking(b))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id int64, status model.Status) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r.bookings[i].Status = status
	b := cloneBooking(r.bookings[i])
	return &b, nil
}

func (r *MemoryRepository) BookedTimes(_ context.Context, date model.Date) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	times := []string{}
	for _, b := range r.bookings {
		if b.PreferredDate.Equal(date) && b.Status.BlocksSlot() {
			times = append(times, b.PreferredTime)
		}
	}
	return times, nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}

// indexOf relies on bookings being appended in ID order.
func (r *MemoryRepository) indexOf(id int64) int {
	i := sort.Search(len(r.bookings), func(i int) bool { return r.bookings[i].ID >= id })
	if i < len(r.bookings) && r.bookings[i].ID == id {
		return i
	}
	return -1
}

func cloneBooking(b model.Booking) model.Booking {
	b.Email = cloneString(b.Email)
	b.Message = cloneString(b.Message)
	b.DogName = cloneString(b.DogName)
	if b.DogID != nil {
		v := *b.DogID
		b.DogID = &v
	}
	return b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
