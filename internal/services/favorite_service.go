package services

import (
	"context"

	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
}

func (s *FavoriteService) Toggle(ctx context.Context, customerID, providerID int) (bool, error) {
	return s.FavoriteRepo.Toggle(ctx, customerID, providerID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, customerID, providerID int) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, customerID, providerID)
}

func (s *FavoriteService) GetFavoritesByCustomer(ctx context.Context, customerID int) ([]models.Favorite, error) {
	return s.FavoriteRepo.GetFavoritesByCustomer(ctx, customerID)
}
