package repositories

import (
	"context"
	"database/sql"
	"time"

	"tumaBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	query := `
INSERT INTO messages (booking_id, sender_id, receiver_id, text, attachment_path, is_read, created_at)
VALUES (?, ?, ?, ?, ?, false, ?)
	`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query, msg.BookingID, msg.SenderID, msg.ReceiverID, msg.Text, msg.AttachmentPath, now)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return models.Message{}, models.ErrBookingNotFound
		}
		return models.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}
	msg.ID = int(id)
	msg.IsRead = false
	msg.CreatedAt = now
	return msg, nil
}

func (r *MessageRepository) GetMessagesByBooking(ctx context.Context, bookingID, page, pageSize int) ([]models.Message, error) {
	offset := (page - 1) * pageSize
	query := `
SELECT id, booking_id, sender_id, receiver_id, text, attachment_path, is_read, created_at
FROM messages
WHERE booking_id = ?
ORDER BY id ASC
LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, bookingID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.BookingID, &msg.SenderID, &msg.ReceiverID, &msg.Text, &msg.AttachmentPath, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips is_read on every unread message of the booking addressed
// to the receiver. Fired when the conversation is opened.
func (r *MessageRepository) MarkRead(ctx context.Context, bookingID, receiverID int) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET is_read = true WHERE booking_id = ? AND receiver_id = ? AND is_read = false`,
		bookingID, receiverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetConversations assembles the chat list in one round trip: every
// booking of the user joined with the counterparty, the latest message
// and the unread counter. Replaces the per-booking query loop the mobile
// clients used to drive.
func (r *MessageRepository) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	const query = `
WITH last_messages AS (
    SELECT m.booking_id, m.text, m.created_at
    FROM messages m
    JOIN (
        SELECT booking_id, MAX(id) AS max_id
        FROM messages
        GROUP BY booking_id
    ) t ON t.max_id = m.id
)

SELECT b.id, b.status, s.title,
       u.id, u.name, u.surname, u.avatar_path,
       COALESCE(lm.text, '') AS last_message,
       COALESCE(lm.created_at, b.created_at) AS last_message_at,
       COALESCE(un.cnt, 0) AS unread_count
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users u ON u.id = IF(b.customer_id = ?, b.provider_id, b.customer_id)
LEFT JOIN last_messages lm ON lm.booking_id = b.id
LEFT JOIN (
    SELECT booking_id, COUNT(*) AS cnt
    FROM messages
    WHERE receiver_id = ? AND is_read = false
    GROUP BY booking_id
) un ON un.booking_id = b.id
WHERE b.customer_id = ? OR b.provider_id = ?
ORDER BY last_message_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		err := rows.Scan(
			&c.BookingID, &c.BookingStatus, &c.ServiceTitle,
			&c.OtherUser.ID, &c.OtherUser.Name, &c.OtherUser.Surname, &c.OtherUser.AvatarPath,
			&c.LastMessage, &c.LastMessageAt, &c.UnreadCount,
		)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *MessageRepository) UnreadTotal(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = false`, userID).Scan(&count)
	return count, err
}
