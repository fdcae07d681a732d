package services

import (
	"context"
	"errors"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

type ReviewService struct {
	ReviewsRepo *repositories.ReviewRepository
	BookingRepo *repositories.BookingRepository
}

// ProviderReviews is the review list plus the summary recomputed from it.
type ProviderReviews struct {
	Reviews []models.Review      `json:"reviews"`
	Summary models.RatingSummary `json:"summary"`
}

// validateSubmission runs the client-side checks before any remote call:
// a rating of zero or a missing booking never reaches the store.
func validateSubmission(rev models.Review) error {
	if rev.CustomerID == 0 {
		return errors.New("authentication required")
	}
	if rev.BookingID == 0 {
		return errors.New("booking_id is required")
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	for _, dim := range []*int{rev.Quality, rev.Communication, rev.Timeliness, rev.Professionalism} {
		if dim != nil && (*dim < 1 || *dim > 5) {
			return errors.New("dimension ratings must be between 1 and 5")
		}
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if err := validateSubmission(rev); err != nil {
		return models.Review{}, err
	}
	b, err := s.BookingRepo.GetBookingByID(ctx, rev.BookingID)
	if err != nil {
		return models.Review{}, err
	}
	if b.CustomerID != rev.CustomerID {
		return models.Review{}, models.ErrNotBookingParty
	}
	if b.Status != fsm.StatusCompleted {
		return models.Review{}, errors.New("booking is not completed")
	}
	rev.ProviderID = b.ProviderID
	rev.ServiceID = b.ServiceID
	rev.Verified = true
	return s.ReviewsRepo.CreateReview(ctx, rev)
}

func (s *ReviewService) GetProviderReviews(ctx context.Context, providerID int) (ProviderReviews, error) {
	reviews, err := s.ReviewsRepo.GetReviewsByProvider(ctx, providerID)
	if err != nil {
		return ProviderReviews{}, err
	}
	return ProviderReviews{Reviews: reviews, Summary: Summarize(reviews)}, nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID, userID int) error {
	return s.ReviewsRepo.AddHelpfulVote(ctx, reviewID, userID)
}

func (s *ReviewService) RespondToReview(ctx context.Context, reviewID, providerID int, text string) error {
	if text == "" {
		return errors.New("response text is empty")
	}
	return s.ReviewsRepo.SetProviderResponse(ctx, reviewID, providerID, text)
}

// Summarize recomputes the aggregate rating from the full review set.
// Dimension means only count reviews that carry the dimension; an absent
// value no longer drags the mean toward zero.
func Summarize(reviews []models.Review) models.RatingSummary {
	summary := models.RatingSummary{
		Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	var ratingSum int
	var dims = []struct {
		value func(models.Review) *int
		out   *float64
	}{
		{func(r models.Review) *int { return r.Quality }, &summary.Quality},
		{func(r models.Review) *int { return r.Communication }, &summary.Communication},
		{func(r models.Review) *int { return r.Timeliness }, &summary.Timeliness},
		{func(r models.Review) *int { return r.Professionalism }, &summary.Professionalism},
	}

	for _, rev := range reviews {
		ratingSum += rev.Rating
		if rev.Rating >= 1 && rev.Rating <= 5 {
			summary.Histogram[rev.Rating]++
		}
	}
	summary.Total = len(reviews)
	summary.Average = float64(ratingSum) / float64(len(reviews))

	for _, dim := range dims {
		var sum, count int
		for _, rev := range reviews {
			if v := dim.value(rev); v != nil {
				sum += *v
				count++
			}
		}
		if count > 0 {
			*dim.out = float64(sum) / float64(count)
		}
	}
	return summary
}
