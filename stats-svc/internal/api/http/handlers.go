package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"tasterealm/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Stats service.StatsServiceInterface
}

func NewHandler(svc service.StatsServiceInterface) *Handler {
	return &Handler{Stats: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "stats-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/stats/popular", h.getPopular).Methods("GET")
	r.HandleFunc("/api/stats/daily", h.getDaily).Methods("GET")
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	data, err := h.Stats.Popular(r.Context(), limit)
	if err != nil {
		log.Printf("[stats-svc] popular: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Daily(r.Context(), r.URL.Query().Get("date"))
	if errors.Is(err, service.ErrInvalidDate) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
