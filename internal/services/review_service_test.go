package services

import (
	"testing"

	"tumaBack/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Average != 0 {
		t.Errorf("expected zero average, got %f", summary.Average)
	}
	if summary.Total != 0 {
		t.Errorf("expected zero total, got %d", summary.Total)
	}
	for star := 1; star <= 5; star++ {
		if summary.Histogram[star] != 0 {
			t.Errorf("expected empty histogram at %d, got %d", star, summary.Histogram[star])
		}
	}
}

func TestSummarizeSingleReview(t *testing.T) {
	reviews := []models.Review{{
		Rating:          4,
		Quality:         intPtr(5),
		Communication:   intPtr(3),
		Timeliness:      intPtr(4),
		Professionalism: intPtr(4),
	}}
	summary := Summarize(reviews)

	if summary.Average != 4 {
		t.Errorf("expected average 4, got %f", summary.Average)
	}
	if summary.Total != 1 {
		t.Errorf("expected total 1, got %d", summary.Total)
	}
	if summary.Quality != 5 {
		t.Errorf("expected quality 5, got %f", summary.Quality)
	}
	if summary.Communication != 3 {
		t.Errorf("expected communication 3, got %f", summary.Communication)
	}
	if summary.Histogram[4] != 1 {
		t.Errorf("expected one 4-star review, got %d", summary.Histogram[4])
	}
}

func TestSummarizeHistogramAndAverage(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 2},
	}
	summary := Summarize(reviews)

	if summary.Average != 4 {
		t.Errorf("expected average 4, got %f", summary.Average)
	}
	if summary.Histogram[5] != 2 || summary.Histogram[4] != 1 || summary.Histogram[2] != 1 {
		t.Errorf("unexpected histogram: %v", summary.Histogram)
	}
	if summary.Histogram[1] != 0 || summary.Histogram[3] != 0 {
		t.Errorf("unexpected histogram: %v", summary.Histogram)
	}
}

func TestSummarizeSkipsMissingDimensions(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5, Quality: intPtr(5)},
		{Rating: 3},
	}
	summary := Summarize(reviews)

	// only one review carries quality, so the mean is 5, not 2.5
	if summary.Quality != 5 {
		t.Errorf("expected quality 5, got %f", summary.Quality)
	}
	if summary.Communication != 0 {
		t.Errorf("expected communication 0, got %f", summary.Communication)
	}
}

func TestValidateSubmission(t *testing.T) {
	valid := models.Review{CustomerID: 1, BookingID: 2, Rating: 4}
	if err := validateSubmission(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		rev  models.Review
	}{
		{"unauthenticated", models.Review{BookingID: 2, Rating: 4}},
		{"no booking", models.Review{CustomerID: 1, Rating: 4}},
		{"zero rating", models.Review{CustomerID: 1, BookingID: 2}},
		{"rating too high", models.Review{CustomerID: 1, BookingID: 2, Rating: 6}},
		{"bad dimension", models.Review{CustomerID: 1, BookingID: 2, Rating: 4, Quality: intPtr(0)}},
	}
	for _, tc := range cases {
		if err := validateSubmission(tc.rev); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
