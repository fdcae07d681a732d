package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"tumaBack/utils"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedFolders = map[string]bool{
	"avatars":  true,
	"services": true,
	"reviews":  true,
	"messages": true,
}

type MediaHandler struct {
	Storage *utils.Storage
}

// Upload accepts a multipart form with a single "file" field and stores
// it under the requested folder; the stored URL comes back to the client
// to be attached to a profile, service, review or message.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		http.Error(w, "Uploads are not configured", http.StatusServiceUnavailable)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	folder := r.FormValue("folder")
	if !allowedFolders[folder] {
		http.Error(w, "Unknown upload folder", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Upload read error: %v", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	url, err := h.Storage.UploadFile(data, header.Filename, folder, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Upload error: %v", err)
		http.Error(w, "Failed to upload file", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
