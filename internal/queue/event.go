// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a slot claim commits. It
// carries enough information for downstream consumers (the chat gateway's
// notifier, audit logging) to act without querying the primary database.
type ReservationConfirmedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID uint64 `json:"reservation_id,omitempty"`
	UserID        uint64 `json:"user_id"`
	DisplayName   string `json:"display_name"`
	ActivityID    uint64 `json:"activity_id"`
	ActivityName  string `json:"activity_name"`
	UsedSlots     uint32 `json:"used_slots"`
	MaxCapacity   uint32 `json:"max_capacity"`
	ConfirmedAt   string `json:"confirmed_at"`
}
