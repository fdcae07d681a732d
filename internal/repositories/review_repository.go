package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"tumaBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM provider_reviews WHERE booking_id = ?`, rev.BookingID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	photosJSON, err := json.Marshal(rev.Photos)
	if err != nil {
		return models.Review{}, err
	}

	query := `
INSERT INTO provider_reviews (booking_id, service_id, provider_id, customer_id, rating,
                              quality, communication, timeliness, professionalism,
                              text, photos, verified, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		rev.BookingID, rev.ServiceID, rev.ProviderID, rev.CustomerID, rev.Rating,
		rev.Quality, rev.Communication, rev.Timeliness, rev.Professionalism,
		rev.Text, photosJSON, rev.Verified,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.Review{}, models.ErrAlreadyReviewed
		}
		return models.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)
	rev.CreatedAt = time.Now()
	return rev, nil
}

// GetReviewsByProvider returns the full review set of a provider. The
// rating summary is recomputed from this set on every fetch, nothing is
// persisted.
func (r *ReviewRepository) GetReviewsByProvider(ctx context.Context, providerID int) ([]models.Review, error) {
	query := `
SELECT r.id, r.booking_id, r.service_id, r.provider_id, r.customer_id, r.rating,
       r.quality, r.communication, r.timeliness, r.professionalism,
       r.text, r.photos, r.response_text, r.response_at, r.helpful_count, r.verified,
       u.name, u.surname, u.avatar_path,
       r.created_at, r.updated_at
FROM provider_reviews r
JOIN users u ON u.id = r.customer_id
WHERE r.provider_id = ?
ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		var photosJSON sql.NullString
		err := rows.Scan(&rev.ID, &rev.BookingID, &rev.ServiceID, &rev.ProviderID, &rev.CustomerID, &rev.Rating,
			&rev.Quality, &rev.Communication, &rev.Timeliness, &rev.Professionalism,
			&rev.Text, &photosJSON, &rev.ResponseText, &rev.ResponseAt, &rev.HelpfulCount, &rev.Verified,
			&rev.Customer.Name, &rev.Customer.Surname, &rev.Customer.AvatarPath,
			&rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rev.Customer.ID = rev.CustomerID
		if photosJSON.Valid && photosJSON.String != "" {
			if err := json.Unmarshal([]byte(photosJSON.String), &rev.Photos); err != nil {
				log.Printf("failed to decode photos for review %d: %v", rev.ID, err)
			}
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	query := `
SELECT id, booking_id, service_id, provider_id, customer_id, rating,
       text, response_text, response_at, helpful_count, verified, created_at
FROM provider_reviews WHERE id = ?`
	var rev models.Review
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.BookingID, &rev.ServiceID, &rev.ProviderID, &rev.CustomerID, &rev.Rating,
		&rev.Text, &rev.ResponseText, &rev.ResponseAt, &rev.HelpfulCount, &rev.Verified, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return rev, nil
}

// AddHelpfulVote records a vote deduplicated by (review, voter) and bumps
// the counter atomically in the same transaction. A repeat vote is a
// conflict, never a double count; two concurrent first votes cannot lose
// an increment the way a read-modify-write would.
func (r *ReviewRepository) AddHelpfulVote(ctx context.Context, reviewID, userID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO review_votes (review_id, user_id, created_at) VALUES (?, ?, NOW())`, reviewID, userID); err != nil {
		if isDuplicateEntry(err) {
			return models.ErrAlreadyVoted
		}
		if isForeignKeyConstraintError(err) {
			return models.ErrReviewNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE provider_reviews SET helpful_count = helpful_count + 1 WHERE id = ?`, reviewID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetProviderResponse stores the provider's single reply. The predicate
// keeps it one-shot: a second response does not overwrite the first.
func (r *ReviewRepository) SetProviderResponse(ctx context.Context, reviewID, providerID int, text string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE provider_reviews SET response_text = ?, response_at = NOW(), updated_at = NOW()
		 WHERE id = ? AND provider_id = ? AND response_text IS NULL`,
		text, reviewID, providerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		rev, err := r.GetReviewByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if rev.ProviderID != providerID {
			return models.ErrReviewNotFound
		}
		return models.ErrAlreadyResponded
	}
	return nil
}
