package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"flipsniper/models"
	watchlistsvc "flipsniper/services/watchlist"
)

type watchlistService interface {
	Create(upsert models.WatchCriterionUpsert) (*models.WatchCriterion, error)
	Get(id string) (*models.WatchCriterion, error)
	List(userID string) ([]models.WatchCriterion, error)
	Update(id string, upsert models.WatchCriterionUpsert) (*models.WatchCriterion, error)
	Delete(id string) error
}

var _ watchlistService = (*watchlistsvc.Service)(nil)

// WatchlistHandler exposes CRUD over saved watchlist criteria.
type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(s watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: s}
}

// List returns the criteria owned by the requesting user.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = models.DefaultUserID
	}

	items, err := h.Service.List(userID)
	if err != nil {
		log.Printf("[watchlist-handler] list failed for user=%s: %v", userID, err)
		http.Error(w, "failed to list watchlist items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, items)
}

// Create validates and stores a new criterion.
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var upsert models.WatchCriterionUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upsert); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(upsert)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Get returns one criterion by ID.
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	criterion, err := h.Service.Get(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, criterion)
}

// Update replaces every field of an existing criterion except its ID.
func (h *WatchlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upsert models.WatchCriterionUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upsert); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Update(id, upsert)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

// Delete removes a criterion.
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *watchlistsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, watchlistsvc.ErrMarketplaceCapReached):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, watchlistsvc.ErrNotFound):
		http.Error(w, "watchlist item not found", http.StatusNotFound)
	default:
		log.Printf("[watchlist-handler] unexpected error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
