package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tumaBack/internal/models"
	"tumaBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID int `json:"booking_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateBookingIntent(r.Context(), req.BookingID, currentUserID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotBookingParty):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Booking is not payable", http.StatusConflict)
		default:
			log.Printf("CreateIntent error: %v", err)
			http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IntentID string `json:"intent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IntentID == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.ConfirmPayment(r.Context(), req.IntentID, currentUserID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentNotFound):
			http.Error(w, "Payment not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotBookingParty):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, models.ErrPaymentNotSucceeded):
			http.Error(w, "Payment has not succeeded", http.StatusPaymentRequired)
		default:
			log.Printf("ConfirmPayment error: %v", err)
			http.Error(w, "Failed to confirm payment", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}
