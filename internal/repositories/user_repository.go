package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tumaBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
INSERT INTO users (name, surname, phone, email, password, city, role, avatar_path, bio, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	res, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password, user.City, user.Role, user.AvatarPath, user.Bio, now)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	user.CreatedAt = now
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
SELECT id, name, surname, phone, email, city, role, avatar_path, COALESCE(bio, ''), created_at, updated_at
FROM users WHERE id = ?`
	var user models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.City, &user.Role,
		&user.AvatarPath, &user.Bio, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	user.ReviewRating = getProviderAverageRating(ctx, r.DB, user.ID)
	if count, err := getProviderTotalReviews(ctx, r.DB, user.ID); err == nil {
		user.ReviewsCount = count
	}
	return user, nil
}

func (r *UserRepository) getUserByField(ctx context.Context, field, value string) (models.User, error) {
	query := `
SELECT id, name, surname, phone, email, password, city, role, avatar_path, created_at
FROM users WHERE ` + field + ` = ?`
	var user models.User
	err := r.DB.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.City, &user.Role, &user.AvatarPath, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getUserByField(ctx, "email", email)
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	return r.getUserByField(ctx, "phone", phone)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) error {
	query := `
UPDATE users SET name = ?, surname = ?, city = ?, avatar_path = ?, bio = ?, updated_at = NOW()
WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, user.Name, user.Surname, user.City, user.AvatarPath, user.Bio, user.ID)
	return err
}

func (r *UserRepository) SetSession(ctx context.Context, session models.Session) error {
	query := `
INSERT INTO sessions (user_id, role, refresh_token, expires_at)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`
	var session models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil
		}
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) SavePushToken(ctx context.Context, userID int, token string) error {
	query := `
INSERT INTO push_tokens (user_id, token, created_at) VALUES (?, ?, NOW())
ON DUPLICATE KEY UPDATE user_id = VALUES(user_id)`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *UserRepository) GetPushTokens(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM push_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
