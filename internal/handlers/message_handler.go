package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tumaBack/internal/models"
	"tumaBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID      int     `json:"booking_id"`
		Text           string  `json:"text"`
		AttachmentPath *string `json:"attachment_path,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), req.BookingID, currentUserID(r), req.Text, req.AttachmentPath)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotBookingParty):
			http.Error(w, "Not a booking party", http.StatusForbidden)
		default:
			log.Printf("SendMessage error: %v", err)
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathInt(r, "booking_id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 50)

	messages, err := h.Service.GetMessages(r.Context(), bookingID, currentUserID(r), page, pageSize)
	if err != nil {
		if errors.Is(err, models.ErrNotBookingParty) {
			http.Error(w, "Not a booking party", http.StatusForbidden)
			return
		}
		log.Printf("GetMessages error: %v", err)
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathInt(r, "booking_id")
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}
	updated, err := h.Service.MarkRead(r.Context(), bookingID, currentUserID(r))
	if err != nil {
		if errors.Is(err, models.ErrNotBookingParty) {
			http.Error(w, "Not a booking party", http.StatusForbidden)
			return
		}
		log.Printf("MarkRead error: %v", err)
		http.Error(w, "Failed to mark messages read", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"updated": updated})
}

func (h *MessageHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.Service.GetConversations(r.Context(), currentUserID(r))
	if err != nil {
		log.Printf("GetConversations error: %v", err)
		http.Error(w, "Failed to get conversations", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(conversations)
}

func (h *MessageHandler) GetUnreadTotal(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.UnreadTotal(r.Context(), currentUserID(r))
	if err != nil {
		log.Printf("GetUnreadTotal error: %v", err)
		http.Error(w, "Failed to count unread messages", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"unread": count})
}
