package services

import (
	"tumaBack/internal/models"
)

// RealtimePublisher pushes change events to a user's open websocket.
// Implemented by the hub in cmd; services only need the send side.
type RealtimePublisher interface {
	PublishToUser(userID int, event models.Event)
}
