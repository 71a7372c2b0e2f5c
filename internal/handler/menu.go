package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto-crm/api/internal/images"
	"github.com/resto-crm/api/internal/menu"
)

// MenuHandler serves the menu browser endpoints. The catalog is static, so
// the handler holds it directly rather than going through a store seam.
type MenuHandler struct {
	catalog *menu.Catalog
	picker  *menu.Picker
	images  images.Resolver
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{
		catalog: catalog,
		picker:  menu.NewPicker(catalog),
	}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/categories", h.Categories)
}

// --- Response types ---

type menuItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

func (h *MenuHandler) toMenuItemResponse(it menu.Item) menuItemResponse {
	return menuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		Price:       it.Price,
		Description: it.Description,
		ImageURL:    h.images.URL(it.Image, 120),
	}
}

// --- Handlers ---

// List returns the visible menu for an optional free-text query and category.
// An empty result set is a valid response, not an error.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = menu.CategoryAll
	}

	items := h.picker.Filter(query, category)
	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = h.toMenuItemResponse(it)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Categories returns the distinct category labels in menu order.
func (h *MenuHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}
