package handlers

import (
	"net/http"
	"strconv"
)

// currentUserID reads the authenticated user id placed into the request
// context by the JWT middleware.
func currentUserID(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(":" + name))
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}
