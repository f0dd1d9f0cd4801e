package model

// Activity represents a bookable, capacity-limited offering as stored in
// the `activities` table. UsedSlots is mutated only by the reservation
// engine; catalog sync may change Name and MaxCapacity for an existing id
// but never touches UsedSlots. The invariant 0 <= UsedSlots <= MaxCapacity
// holds at all times.
type Activity struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	MaxCapacity uint32 `json:"max_capacity"`
	UsedSlots   uint32 `json:"used_slots"`
}

// Remaining returns the number of free slots.
func (a Activity) Remaining() uint32 {
	if a.UsedSlots >= a.MaxCapacity {
		return 0
	}
	return a.MaxCapacity - a.UsedSlots
}

// IsFull reports whether the activity has no free slots left.
func (a Activity) IsFull() bool { return a.UsedSlots >= a.MaxCapacity }
