package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tumaBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	query := `
INSERT INTO payments (booking_id, user_id, intent_id, amount, currency, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query, p.BookingID, p.UserID, p.IntentID, p.Amount, p.Currency, p.Status, now)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = int(id)
	p.CreatedAt = now
	return p, nil
}

func (r *PaymentRepository) GetPaymentByIntentID(ctx context.Context, intentID string) (models.Payment, error) {
	query := `
SELECT id, booking_id, user_id, intent_id, amount, currency, status, created_at, updated_at
FROM payments WHERE intent_id = ?`
	var p models.Payment
	err := r.DB.QueryRowContext(ctx, query, intentID).Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.IntentID, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, models.ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) UpdatePaymentStatus(ctx context.Context, intentID, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = ?, updated_at = NOW() WHERE intent_id = ?`, status, intentID)
	return err
}
