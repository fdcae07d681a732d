package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

const pushPreviewRunes = 80

// previewText trims the push notification body to a rune boundary so a
// multi-byte character is never split mid-sequence.
func previewText(s string) string {
	if utf8.RuneCountInString(s) <= pushPreviewRunes {
		return s
	}
	return string([]rune(s)[:pushPreviewRunes])
}

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	BookingRepo *repositories.BookingRepository
	Realtime    RealtimePublisher
	Notifier    *NotificationService
}

// SendMessage inserts a message on a booking thread. The receiver is
// always the computed other party of the booking; a sender outside the
// pair is rejected.
func (s *MessageService) SendMessage(ctx context.Context, bookingID, senderID int, text string, attachmentPath *string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachmentPath == nil {
		return models.Message{}, errors.New("message text is empty")
	}

	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Message{}, err
	}
	receiverID, err := b.OtherParty(senderID)
	if err != nil {
		return models.Message{}, err
	}
	if b.Status == fsm.StatusCancelled {
		return models.Message{}, errors.New("booking is cancelled")
	}

	msg, err := s.MessageRepo.CreateMessage(ctx, models.Message{
		BookingID:      bookingID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
		AttachmentPath: attachmentPath,
	})
	if err != nil {
		return models.Message{}, err
	}

	if s.Realtime != nil {
		s.Realtime.PublishToUser(receiverID, models.Event{Type: "message.new", Payload: msg})
	}
	if s.Notifier != nil {
		if err := s.Notifier.Push(ctx, receiverID, "New message", previewText(text), map[string]string{
			"booking_id": strconv.Itoa(bookingID),
		}); err != nil {
			log.Printf("message %d: push to user %d failed: %v", msg.ID, receiverID, err)
		}
	}
	return msg, nil
}

func (s *MessageService) GetMessages(ctx context.Context, bookingID, userID, page, pageSize int) ([]models.Message, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := b.OtherParty(userID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.MessageRepo.GetMessagesByBooking(ctx, bookingID, page, pageSize)
}

// MarkRead is fired when the user opens a conversation.
func (s *MessageService) MarkRead(ctx context.Context, bookingID, userID int) (int64, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if _, err := b.OtherParty(userID); err != nil {
		return 0, err
	}
	return s.MessageRepo.MarkRead(ctx, bookingID, userID)
}

func (s *MessageService) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	return s.MessageRepo.GetConversations(ctx, userID)
}

func (s *MessageService) UnreadTotal(ctx context.Context, userID int) (int, error) {
	return s.MessageRepo.UnreadTotal(ctx, userID)
}
