package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tumaBack/internal/models"
	"tumaBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var rev models.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	rev.CustomerID = currentUserID(r)

	created, err := h.Service.CreateReview(r.Context(), rev)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyReviewed):
			http.Error(w, "Booking already reviewed", http.StatusConflict)
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotBookingParty):
			http.Error(w, "Not a booking party", http.StatusForbidden)
		default:
			log.Printf("CreateReview error: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReviewHandler) GetProviderReviews(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathInt(r, "provider_id")
	if err != nil {
		http.Error(w, "Invalid provider id", http.StatusBadRequest)
		return
	}
	result, err := h.Service.GetProviderReviews(r.Context(), providerID)
	if err != nil {
		log.Printf("GetProviderReviews error: %v", err)
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid review id", http.StatusBadRequest)
		return
	}
	if err := h.Service.MarkHelpful(r.Context(), reviewID, currentUserID(r)); err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyVoted):
			http.Error(w, "Already voted", http.StatusConflict)
		case errors.Is(err, models.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		default:
			log.Printf("MarkHelpful error: %v", err)
			http.Error(w, "Failed to record vote", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ReviewHandler) RespondToReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid review id", http.StatusBadRequest)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.RespondToReview(r.Context(), reviewID, currentUserID(r), req.Text); err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyResponded):
			http.Error(w, "Review already has a response", http.StatusConflict)
		case errors.Is(err, models.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		default:
			log.Printf("RespondToReview error: %v", err)
			http.Error(w, "Failed to save response", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
