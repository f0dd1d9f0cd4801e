package model

import "time"

// User represents a registered participant as stored in the `users`
// table. The ID is the stable external identifier assigned by the chat
// platform; it is the primary key and never changes. Re-registration
// overwrites the contact fields in place, no history is retained.
//
// Fields:
//  ID           – external participant identifier (users.id).
//  Handle       – optional display alias, e.g. a chat username (users.handle).
//  DisplayName  – full name shown in reports (users.display_name).
//  Phone        – contact phone number (users.phone).
//  RegisteredAt – timestamp of the first successful registration (users.registered_at).
type User struct {
	ID           uint64    `json:"id"`
	Handle       string    `json:"handle,omitempty"`
	DisplayName  string    `json:"display_name"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}
