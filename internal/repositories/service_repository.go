package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tumaBack/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

const serviceColumns = `
s.id, s.provider_id, s.title, s.description, s.category, s.city,
s.price_from, s.price_to, s.price_unit, s.available, s.featured, s.image_path,
u.name, u.surname, u.avatar_path,
s.created_at, s.updated_at`

func (r *ServiceRepository) scanService(row interface {
	Scan(dest ...interface{}) error
}) (models.Service, error) {
	var s models.Service
	var priceFrom, priceTo sql.NullFloat64
	err := row.Scan(
		&s.ID, &s.ProviderID, &s.Title, &s.Description, &s.Category, &s.City,
		&priceFrom, &priceTo, &s.PriceUnit, &s.Available, &s.Featured, &s.ImagePath,
		&s.Provider.Name, &s.Provider.Surname, &s.Provider.AvatarPath,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.Service{}, err
	}
	if priceFrom.Valid {
		s.PriceFrom = &priceFrom.Float64
	}
	if priceTo.Valid {
		s.PriceTo = &priceTo.Float64
	}
	s.Provider.ID = s.ProviderID
	return s, nil
}

func (r *ServiceRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	query := `
INSERT INTO services (provider_id, title, description, category, city, price_from, price_to, price_unit,
                      available, featured, image_path, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		s.ProviderID, s.Title, s.Description, s.Category, s.City, s.PriceFrom, s.PriceTo, s.PriceUnit,
		s.Available, s.Featured, s.ImagePath, now,
	)
	if err != nil {
		return models.Service{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	s.ID = int(id)
	s.CreatedAt = now
	return s, nil
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s JOIN users u ON u.id = s.provider_id WHERE s.id = ?`
	s, err := r.scanService(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, models.ErrServiceNotFound
		}
		return models.Service{}, err
	}
	s.Rating = getProviderAverageRating(ctx, r.DB, s.ProviderID)
	if count, err := getProviderTotalReviews(ctx, r.DB, s.ProviderID); err == nil {
		s.ReviewCount = count
	}
	return s, nil
}

func (r *ServiceRepository) GetServices(ctx context.Context, f models.ServiceFilter) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s JOIN users u ON u.id = s.provider_id WHERE s.available = true`
	args := []interface{}{}
	if f.Category != "" {
		query += ` AND s.category = ?`
		args = append(args, f.Category)
	}
	if f.City != "" {
		query += ` AND s.city = ?`
		args = append(args, f.City)
	}
	if f.Query != "" {
		query += ` AND (s.title LIKE ? OR s.description LIKE ?)`
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY s.created_at DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.PageSize, (page-1)*f.PageSize)
	}
	return r.queryServices(ctx, query, args...)
}

func (r *ServiceRepository) GetServicesByProvider(ctx context.Context, providerID int) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s JOIN users u ON u.id = s.provider_id WHERE s.provider_id = ? ORDER BY s.created_at DESC`
	return r.queryServices(ctx, query, providerID)
}

func (r *ServiceRepository) GetFeaturedServices(ctx context.Context, limit int) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s JOIN users u ON u.id = s.provider_id
WHERE s.featured = true AND s.available = true
ORDER BY s.created_at DESC LIMIT ?`
	return r.queryServices(ctx, query, limit)
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, args ...interface{}) ([]models.Service, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		s, err := r.scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range services {
		services[i].Rating = getProviderAverageRating(ctx, r.DB, services[i].ProviderID)
		if count, err := getProviderTotalReviews(ctx, r.DB, services[i].ProviderID); err == nil {
			services[i].ReviewCount = count
		}
	}
	return services, nil
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s models.Service) error {
	query := `
UPDATE services
SET title = ?, description = ?, category = ?, city = ?, price_from = ?, price_to = ?, price_unit = ?,
    available = ?, image_path = ?, updated_at = NOW()
WHERE id = ? AND provider_id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		s.Title, s.Description, s.Category, s.City, s.PriceFrom, s.PriceTo, s.PriceUnit,
		s.Available, s.ImagePath, s.ID, s.ProviderID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) DeleteService(ctx context.Context, id, providerID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM services WHERE id = ? AND provider_id = ?`, id, providerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrServiceNotFound
	}
	return nil
}
