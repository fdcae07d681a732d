package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"tumaBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathInt(r, "provider_id")
	if err != nil {
		http.Error(w, "Invalid provider id", http.StatusBadRequest)
		return
	}
	favorited, err := h.Service.Toggle(r.Context(), currentUserID(r), providerID)
	if err != nil {
		log.Printf("Toggle favorite error: %v", err)
		http.Error(w, "Failed to toggle favorite", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"favorited": favorited})
}

func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathInt(r, "provider_id")
	if err != nil {
		http.Error(w, "Invalid provider id", http.StatusBadRequest)
		return
	}
	favorited, err := h.Service.IsFavorite(r.Context(), currentUserID(r), providerID)
	if err != nil {
		http.Error(w, "Failed to check favorite status", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"favorited": favorited})
}

func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Service.GetFavoritesByCustomer(r.Context(), currentUserID(r))
	if err != nil {
		log.Printf("GetFavorites error: %v", err)
		http.Error(w, "Failed to get favorites", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(favs)
}
