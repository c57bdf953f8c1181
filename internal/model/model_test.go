package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBookingJSONRepresentation(t *testing.T) {
	date, err := ParseDate("2025-06-14")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	b := Booking{
		ID:            5,
		Name:          "Anna",
		Phone:         "+36301234567",
		PreferredDate: date,
		PreferredTime: "9:00 AM",
		Status:        StatusPending,
		CreatedAt:     time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		`"preferred_date":"2025-06-14"`,
		`"created_at":"2025-06-01T08:30:00Z"`,
		`"email":null`,
		`"dog_id":null`,
		`"status":"pending"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
}

func TestDateZeroRendersNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null, got %s", data)
	}
}

func TestDateUnmarshal(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-02-29"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", d)
	}
	if err := json.Unmarshal([]byte(`"2025-13-01"`), &d); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}

func TestNewDateDropsTimeOfDay(t *testing.T) {
	a := NewDate(time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC))
	b, _ := ParseDate("2025-06-14")
	if !a.Equal(b) {
		t.Fatalf("expected %s to equal %s", a, b)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
		blocks bool
	}{
		{StatusPending, true, true},
		{StatusConfirmed, true, true},
		{StatusCancelled, true, false},
		{"archived", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.status, got, tt.valid)
		}
		if got := tt.status.BlocksSlot(); got != tt.blocks {
			t.Errorf("%q.BlocksSlot() = %v, want %v", tt.status, got, tt.blocks)
		}
	}
}
