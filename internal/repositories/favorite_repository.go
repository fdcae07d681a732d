package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tumaBack/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

// Toggle flips (customer, provider) membership in one repository call.
// The unique key on the pair carries the race: a duplicate insert from a
// double click turns into the delete branch instead of a second row.
// Returns whether the provider is favorited after the call.
func (r *FavoriteRepository) Toggle(ctx context.Context, customerID, providerID int) (bool, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO customer_favorites (customer_id, provider_id, created_at) VALUES (?, ?, NOW())`,
		customerID, providerID)
	if err == nil {
		return true, nil
	}
	if !isDuplicateEntry(err) {
		if isForeignKeyConstraintError(err) {
			return false, models.ErrUserNotFound
		}
		return false, err
	}
	_, err = r.DB.ExecContext(ctx,
		`DELETE FROM customer_favorites WHERE customer_id = ? AND provider_id = ?`,
		customerID, providerID)
	if err != nil {
		return false, err
	}
	return false, nil
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, customerID, providerID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customer_favorites WHERE customer_id = ? AND provider_id = ?`,
		customerID, providerID).Scan(&count)
	return count > 0, err
}

func (r *FavoriteRepository) GetFavoritesByCustomer(ctx context.Context, customerID int) ([]models.Favorite, error) {
	query := `
SELECT f.id, f.customer_id, f.provider_id,
       u.name, u.surname, u.avatar_path, u.city,
       f.created_at
FROM customer_favorites f
JOIN users u ON u.id = f.provider_id
WHERE f.customer_id = ?
ORDER BY f.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []models.Favorite{}
	for rows.Next() {
		var fav models.Favorite
		err := rows.Scan(&fav.ID, &fav.CustomerID, &fav.ProviderID,
			&fav.Provider.Name, &fav.Provider.Surname, &fav.Provider.AvatarPath, &fav.City,
			&fav.CreatedAt)
		if err != nil {
			return nil, err
		}
		fav.Provider.ID = fav.ProviderID
		fav.Rating = getProviderAverageRating(ctx, r.DB, fav.ProviderID)
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}
	return favs, nil
}
