package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tumaBack/internal/models"
	"tumaBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	b.CustomerID = currentUserID(r)

	created, err := h.Service.CreateBooking(r.Context(), b)
	if err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		log.Printf("CreateBooking error: %v", err)
		http.Error(w, "Failed to create booking", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	b, err := h.Service.GetBookingByID(r.Context(), id, currentUserID(r))
	if err != nil {
		writeBookingError(w, err, "Failed to get booking")
		return
	}
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.GetBookingsByCustomer(r.Context(), currentUserID(r), r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("GetMyBookings error: %v", err)
		http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.GetBookingsByProvider(r.Context(), currentUserID(r), r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("GetProviderBookings error: %v", err)
		http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

// transition is the shared body of the accept/decline/start/complete/
// cancel endpoints.
func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, action string) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}

	var req struct {
		Notes  string `json:"notes"`
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	notes := req.Notes
	if notes == "" {
		notes = req.Reason
	}

	b, err := h.Service.Transition(r.Context(), id, currentUserID(r), action, notes)
	if err != nil {
		writeBookingError(w, err, "Failed to update booking")
		return
	}
	json.NewEncoder(w).Encode(b)
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request)   { h.transition(w, r, services.ActionAccept) }
func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request)  { h.transition(w, r, services.ActionDecline) }
func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request)    { h.transition(w, r, services.ActionStart) }
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) { h.transition(w, r, services.ActionComplete) }
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request)   { h.transition(w, r, services.ActionCancel) }

func (h *BookingHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	userID := currentUserID(r)
	role, _ := r.Context().Value("role").(string)
	if role == models.RoleProvider {
		err = h.Service.UpdateProviderNotes(r.Context(), id, userID, req.Notes)
	} else {
		err = h.Service.UpdateCustomerNotes(r.Context(), id, userID, req.Notes)
	}
	if err != nil {
		writeBookingError(w, err, "Failed to update notes")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *BookingHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateTotalAmount(r.Context(), id, currentUserID(r), req.Amount); err != nil {
		writeBookingError(w, err, "Failed to update amount")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeBookingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrBookingNotFound):
		http.Error(w, "Booking not found", http.StatusNotFound)
	case errors.Is(err, models.ErrNotBookingParty):
		http.Error(w, "Not a booking party", http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidTransition):
		http.Error(w, "Invalid status transition", http.StatusConflict)
	case errors.Is(err, models.ErrStatusConflict):
		http.Error(w, "Booking status changed, reload and retry", http.StatusConflict)
	default:
		log.Printf("booking error: %v", err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
