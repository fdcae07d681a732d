package models

import "time"

type Message struct {
	ID             int       `json:"id"`
	BookingID      int       `json:"booking_id"`
	SenderID       int       `json:"sender_id"`
	ReceiverID     int       `json:"receiver_id"`
	Text           string    `json:"text"`
	AttachmentPath *string   `json:"attachment_path,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conversation is one row of the chat list: a booking of the current
// user plus the other party, the last message preview and the unread
// counter. Assembled by a single batched query, not per-booking reads.
type Conversation struct {
	BookingID     int         `json:"booking_id"`
	BookingStatus string      `json:"booking_status"`
	ServiceTitle  string      `json:"service_title"`
	OtherUser     UserSummary `json:"other_user"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt time.Time   `json:"last_message_at"`
	UnreadCount   int         `json:"unread_count"`
}
