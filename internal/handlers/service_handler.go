package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tumaBack/internal/models"
	"tumaBack/internal/services"
)

type ServiceHandler struct {
	Service *services.ServiceService
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc.ProviderID = currentUserID(r)

	created, err := h.Service.CreateService(r.Context(), svc)
	if err != nil {
		log.Printf("CreateService error: %v", err)
		http.Error(w, "Failed to create service", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid service id", http.StatusBadRequest)
		return
	}
	svc, err := h.Service.GetServiceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		log.Printf("GetServiceByID error: %v", err)
		http.Error(w, "Failed to get service", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(svc)
}

func (h *ServiceHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	filter := models.ServiceFilter{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
		Query:    r.URL.Query().Get("q"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	result, err := h.Service.GetServices(r.Context(), filter)
	if err != nil {
		log.Printf("GetServices error: %v", err)
		http.Error(w, "Failed to get services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ServiceHandler) GetFeaturedServices(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.GetFeaturedServices(r.Context())
	if err != nil {
		log.Printf("GetFeaturedServices error: %v", err)
		http.Error(w, "Failed to get featured services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ServiceHandler) GetServicesByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathInt(r, "provider_id")
	if err != nil {
		http.Error(w, "Invalid provider id", http.StatusBadRequest)
		return
	}
	result, err := h.Service.GetServicesByProvider(r.Context(), providerID)
	if err != nil {
		log.Printf("GetServicesByProvider error: %v", err)
		http.Error(w, "Failed to get services", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid service id", http.StatusBadRequest)
		return
	}
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc.ID = id
	svc.ProviderID = currentUserID(r)

	if err := h.Service.UpdateService(r.Context(), svc); err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		log.Printf("UpdateService error: %v", err)
		http.Error(w, "Failed to update service", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid service id", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteService(r.Context(), id, currentUserID(r)); err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		log.Printf("DeleteService error: %v", err)
		http.Error(w, "Failed to delete service", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
