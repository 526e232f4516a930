package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"flipsniper/models"
	userssvc "flipsniper/services/users"
)

type userService interface {
	List() []models.User
	Create(name string) (*models.User, error)
	Rename(id, name string) (*models.User, error)
	Delete(id string) error
}

var _ userService = (*userssvc.Service)(nil)

// UsersHandler exposes profile management for the watchlist owner picker.
type UsersHandler struct {
	Service userService
}

func NewUsersHandler(s userService) *UsersHandler {
	return &UsersHandler{Service: s}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.List())
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name string `json:"name"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(request.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *UsersHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var request struct {
		Name string `json:"name"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	renamed, err := h.Service.Rename(id, request.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, renamed)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrEmptyUserName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, userssvc.ErrDefaultUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, userssvc.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.Printf("[users-handler] unexpected error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
