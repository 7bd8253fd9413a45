package handler

import (
	"net/http"

	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/gorilla/mux"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status string `json:"status"`
}

// RegisterHealthRoute registers GET /healthz
func RegisterHealthRoute(router *mux.Router, log logger.Logger) {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, HealthResponse{Status: "ok"})
	}).Methods("GET")
}
