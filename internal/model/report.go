package model

import "time"

// report.go defines the named record types returned by the read-only
// reporting queries. Handlers serialize these directly; the export
// package flattens ReservationDetail rows into delimited text.

// UserReservation describes the single reservation held by a user:
// which activity they claimed and when.
type UserReservation struct {
	ActivityID   uint64    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityStats is one row of the per-activity statistics report,
// ordered by activity id.
type ActivityStats struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	UsedSlots   uint32 `json:"used_slots"`
	MaxCapacity uint32 `json:"max_capacity"`
	IsFull      bool   `json:"is_full"`
}

// Participant is one confirmed attendee of an activity, ordered by the
// time the reservation was made.
type Participant struct {
	UserID      uint64    `json:"user_id"`
	Handle      string    `json:"handle,omitempty"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReservationDetail is the flattened audit row joining a reservation with
// its user and activity. One row per reservation, ordered by creation time.
type ReservationDetail struct {
	UserID       uint64    `json:"user_id"`
	Handle       string    `json:"handle,omitempty"`
	DisplayName  string    `json:"display_name"`
	Phone        string    `json:"phone"`
	ActivityName string    `json:"activity_name"`
	CreatedAt    time.Time `json:"created_at"`
}
