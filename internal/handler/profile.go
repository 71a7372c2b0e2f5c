package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resto-crm/api/internal/images"
	"github.com/resto-crm/api/internal/middleware"
	"github.com/resto-crm/api/internal/staff"
)

// EmployeeStore defines the staff lookup needed by the profile handler.
// Satisfied by *staff.Directory.
type EmployeeStore interface {
	Get(id uuid.UUID) (staff.Employee, error)
}

// PreferenceStore defines the preference operations needed by the handler.
// Satisfied by *prefs.Store.
type PreferenceStore interface {
	DarkMode() bool
	SetDarkMode(on bool) error
}

// ProfileHandler handles the profile and settings endpoints.
type ProfileHandler struct {
	employees EmployeeStore
	prefs     PreferenceStore
	images    images.Resolver
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(employees EmployeeStore, prefs PreferenceStore) *ProfileHandler {
	return &ProfileHandler{employees: employees, prefs: prefs}
}

// RegisterRoutes registers profile endpoints on the given Chi router.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.Profile)
	r.Get("/preferences", h.Preferences)
	r.Put("/preferences/dark-mode", h.SetDarkMode)
}

// --- Request / Response types ---

type preferencesResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type setDarkModeRequest struct {
	DarkMode bool `json:"dark_mode"`
}

// --- Handlers ---

// Profile returns the authenticated employee's profile.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	employee, err := h.employees.Get(claims.EmployeeID)
	if err != nil {
		if errors.Is(err, staff.ErrEmployeeNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "employee not found"})
			return
		}
		log.Printf("ERROR: get profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, employeeResponse{
		ID:        employee.ID,
		Name:      employee.Name,
		Role:      employee.Role,
		Email:     employee.Email,
		Phone:     employee.Phone,
		AvatarURL: h.images.URL(employee.Avatar, 200),
	})
}

// Preferences returns the stored preferences.
func (h *ProfileHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{DarkMode: h.prefs.DarkMode()})
}

// SetDarkMode stores the dark-mode flag. The write is synchronous; the
// response reflects the new state.
func (h *ProfileHandler) SetDarkMode(w http.ResponseWriter, r *http.Request) {
	var req setDarkModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.prefs.SetDarkMode(req.DarkMode); err != nil {
		log.Printf("ERROR: save preferences: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, preferencesResponse{DarkMode: req.DarkMode})
}
