package model

import "time"

// Reservation is an immutable binding of exactly one user to exactly one
// activity, mirroring the `reservations` table. The unique constraint on
// UserID enforces the one-reservation-per-user rule; there is no
// cancellation path, rows are never deleted.
type Reservation struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	ActivityID uint64    `json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`
}
