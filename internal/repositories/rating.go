package repositories

import (
	"context"
	"database/sql"
)

func getProviderAverageRating(ctx context.Context, db *sql.DB, providerID int) float64 {
	var avg sql.NullFloat64
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating),0) FROM provider_reviews WHERE provider_id = ?`, providerID).Scan(&avg); err != nil {
		return 0
	}
	if avg.Valid {
		return avg.Float64
	}
	return 0
}

func getProviderTotalReviews(ctx context.Context, db *sql.DB, providerID int) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM provider_reviews WHERE provider_id = ?`, providerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
