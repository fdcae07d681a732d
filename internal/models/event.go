package models

// Event is the envelope pushed to websocket clients. Type names the
// change ("message.new", "booking.status"), Payload carries the row.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
