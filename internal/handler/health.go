package handler

import "net/http"

// healthResponse is what GET / returns — a friendly status object instead of
// a 404, so pointing a browser at the backend confirms it's alive.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	API     string `json:"api"`
}

// HandleHealth reports that the backend is up.
//
// HTTP: GET /
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "3D portfolio backend is running",
		API:     "/api",
	})
}
