package service

import (
	"slices"
	"testing"

	"github.com/hibridshopp01/booking-backend/internal/model"
)

func TestAvailableTimes(t *testing.T) {
	tests := []struct {
		name   string
		booked []string
		want   []string
	}{
		{
			name:   "nothing booked",
			booked: nil,
			want:   []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM", "6:00 PM"},
		},
		{
			name:   "keeps catalog order",
			booked: []string{"6:00 PM", "9:00 AM"},
			want:   []string{"11:00 AM", "2:00 PM", "4:00 PM"},
		},
		{
			name:   "duplicates remove a slot once",
			booked: []string{"2:00 PM", "2:00 PM"},
			want:   []string{"9:00 AM", "11:00 AM", "4:00 PM", "6:00 PM"},
		},
		{
			name:   "times outside the catalog are ignored",
			booked: []string{"7:30 AM"},
			want:   []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM", "6:00 PM"},
		},
		{
			name:   "fully booked",
			booked: []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM", "6:00 PM"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableTimes(model.SlotCatalog, tt.booked)
			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
