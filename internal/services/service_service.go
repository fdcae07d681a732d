package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
	"tumaBack/internal/retry"
)

const (
	featuredCacheKey = "services:featured"
	featuredCacheTTL = 5 * time.Minute
	featuredLimit    = 12
)

type ServiceService struct {
	ServiceRepo *repositories.ServiceRepository
	Redis       *redis.Client
	Retry       retry.Policy
}

func (s *ServiceService) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	if svc.Title == "" || svc.Category == "" {
		return models.Service{}, errors.New("title and category are required")
	}
	created, err := s.ServiceRepo.CreateService(ctx, svc)
	if err != nil {
		return models.Service{}, err
	}
	s.invalidateFeatured(ctx)
	return created, nil
}

func (s *ServiceService) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	return s.ServiceRepo.GetServiceByID(ctx, id)
}

func (s *ServiceService) GetServices(ctx context.Context, f models.ServiceFilter) ([]models.Service, error) {
	return s.ServiceRepo.GetServices(ctx, f)
}

func (s *ServiceService) GetServicesByProvider(ctx context.Context, providerID int) ([]models.Service, error) {
	return s.ServiceRepo.GetServicesByProvider(ctx, providerID)
}

// GetFeaturedServices serves the landing page strip: Redis cache first,
// then the store behind the shared retry policy. This read historically
// had its own three-attempt loop at the call site; the policy is the
// generalized form of it.
func (s *ServiceService) GetFeaturedServices(ctx context.Context) ([]models.Service, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, featuredCacheKey).Bytes(); err == nil {
			var services []models.Service
			if err := json.Unmarshal(cached, &services); err == nil {
				return services, nil
			}
		}
	}

	var services []models.Service
	err := s.Retry.Do(ctx, func(ctx context.Context) error {
		var err error
		services, err = s.ServiceRepo.GetFeaturedServices(ctx, featuredLimit)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(services); err == nil {
			if err := s.Redis.Set(ctx, featuredCacheKey, payload, featuredCacheTTL).Err(); err != nil {
				log.Printf("featured cache set failed: %v", err)
			}
		}
	}
	return services, nil
}

func (s *ServiceService) UpdateService(ctx context.Context, svc models.Service) error {
	if err := s.ServiceRepo.UpdateService(ctx, svc); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *ServiceService) DeleteService(ctx context.Context, id, providerID int) error {
	if err := s.ServiceRepo.DeleteService(ctx, id, providerID); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *ServiceService) invalidateFeatured(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, featuredCacheKey).Err(); err != nil {
		log.Printf("featured cache invalidation failed: %v", err)
	}
}
