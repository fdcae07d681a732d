package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
	"tumaBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 60 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	SigningKey   string
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.User, error) {
	if user.Email == "" || user.Password == "" {
		return models.User{}, errors.New("email and password are required")
	}
	if user.Role != models.RoleProvider {
		user.Role = models.RoleCustomer
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}
	if existing.Email != "" {
		return models.User{}, models.ErrDuplicateEmail
	}
	if user.Phone != "" {
		existing, err = s.UserRepo.GetUserByPhone(ctx, user.Phone)
		if err != nil && !errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, err
		}
		if existing.Phone != "" {
			return models.User{}, models.ErrDuplicatePhone
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hashedPassword)

	return s.UserRepo.CreateUser(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, models.User, error) {
	var (
		user models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.UserRepo.GetUserByEmail(ctx, req.Email)
	} else {
		user, err = s.UserRepo.GetUserByPhone(ctx, req.Phone)
	}
	if err != nil {
		return models.Tokens{}, models.User{}, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Printf("invalid password for user %d", user.ID)
		return models.Tokens{}, models.User{}, models.ErrInvalidCredentials
	}

	tokens, err := s.createSession(ctx, user)
	if err != nil {
		return models.Tokens{}, models.User{}, err
	}
	user.Password = ""
	return tokens, user, nil
}

func (s *UserService) createSession(ctx context.Context, user models.User) (models.Tokens, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	accessToken, err := token.SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.SetSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshSession exchanges a valid refresh token for a new token pair.
// The stored session is rotated so a captured refresh token stops
// working after one use.
func (s *UserService) RefreshSession(ctx context.Context, refreshToken string) (models.Tokens, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Tokens{}, err
	}
	if session.UserID == 0 || session.ExpiresAt.Before(time.Now()) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.Tokens{}, err
	}
	return s.createSession(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) error {
	return s.UserRepo.UpdateUser(ctx, user)
}

func (s *UserService) RegisterPushToken(ctx context.Context, userID int, token string) error {
	if token == "" {
		return errors.New("token is empty")
	}
	return s.UserRepo.SavePushToken(ctx, userID, token)
}
