package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto-crm/api/internal/enum"
	"github.com/resto-crm/api/internal/images"
	"github.com/resto-crm/api/internal/menu"
	"github.com/resto-crm/api/internal/order"
	"github.com/resto-crm/api/internal/table"
)

// DraftLedger defines the ledger methods needed while composing an order.
// Satisfied by *table.Ledger.
type DraftLedger interface {
	Get(id uuid.UUID) (table.Table, error)
	AttachOrder(id uuid.UUID, o order.Order) (table.Table, error)
}

// DraftHandler handles order-composition endpoints: one draft per table, each
// holding positions, a working selection, and the item-browser filter state.
type DraftHandler struct {
	drafts  *order.DraftStore
	tables  DraftLedger
	catalog *menu.Catalog
	picker  *menu.Picker
	hub     Broadcaster
	images  images.Resolver
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts *order.DraftStore, tables DraftLedger, catalog *menu.Catalog, hub Broadcaster) *DraftHandler {
	return &DraftHandler{
		drafts:  drafts,
		tables:  tables,
		catalog: catalog,
		picker:  menu.NewPicker(catalog),
		hub:     hub,
	}
}

// RegisterTableRoutes registers the draft-opening endpoint. Expected to be
// mounted at /tables.
func (h *DraftHandler) RegisterTableRoutes(r chi.Router) {
	r.Post("/{id}/draft", h.Open)
}

// RegisterRoutes registers draft endpoints on the given Chi router.
// Expected to be mounted at /drafts.
func (h *DraftHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Discard)
	r.Get("/{id}/menu", h.Menu)
	r.Put("/{id}/filter", h.SetFilter)
	r.Post("/{id}/selection/items", h.AddItem)
	r.Post("/{id}/selection/items/{itemID}/increment", h.IncrementItem)
	r.Post("/{id}/selection/items/{itemID}/decrement", h.DecrementItem)
	r.Post("/{id}/positions", h.AddPosition)
	r.Delete("/{id}/positions/{pid}", h.RemovePosition)
	r.Delete("/{id}/positions/{pid}/lines/{itemID}", h.RemoveLine)
	r.Post("/{id}/positions/{pid}/confirm", h.Confirm)
	r.Post("/{id}/commit", h.Commit)
}

// --- Request / Response types ---

type setFilterRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

type addItemRequest struct {
	ItemID string `json:"item_id"`
}

type draftLineResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type draftPositionResponse struct {
	ID    uuid.UUID           `json:"id"`
	Lines []draftLineResponse `json:"lines"`
}

type draftResponse struct {
	ID        uuid.UUID               `json:"id"`
	TableID   uuid.UUID               `json:"table_id"`
	Positions []draftPositionResponse `json:"positions"`
	Selection []draftLineResponse     `json:"selection"`
	Query     string                  `json:"query"`
	Category  string                  `json:"category"`
	Total     decimal.Decimal         `json:"total"`
}

type draftMenuItemResponse struct {
	menuItemResponse
	SelectedQuantity int `json:"selected_quantity"`
}

type commitResponse struct {
	Order orderResponse `json:"order"`
	Table tableResponse `json:"table"`
}

func toDraftLineResponse(l order.Line) draftLineResponse {
	return draftLineResponse{
		ItemID:   l.Item.ID,
		Name:     l.Item.Name,
		Quantity: l.Quantity,
		Price:    l.Item.Price,
		Subtotal: l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
	}
}

func toDraftResponse(snap order.Snapshot) draftResponse {
	resp := draftResponse{
		ID:        snap.ID,
		TableID:   snap.TableID,
		Positions: make([]draftPositionResponse, len(snap.Positions)),
		Selection: make([]draftLineResponse, len(snap.Selection)),
		Query:     snap.Query,
		Category:  snap.Category,
		Total:     snap.Total,
	}
	for i, p := range snap.Positions {
		pr := draftPositionResponse{ID: p.ID, Lines: make([]draftLineResponse, len(p.Lines))}
		for j, l := range p.Lines {
			pr.Lines[j] = toDraftLineResponse(l)
		}
		resp.Positions[i] = pr
	}
	for i, l := range snap.Selection {
		resp.Selection[i] = toDraftLineResponse(l)
	}
	return resp
}

// --- Handlers ---

// Open creates (or returns) the draft for a table. A table that already has
// an order cannot take a second one, so opening a draft on it is rejected.
func (h *DraftHandler) Open(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	t, err := h.tables.Get(tableID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
		return
	}
	if t.Order != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "table already has an order"})
		return
	}

	d := h.drafts.Open(tableID)
	writeJSON(w, http.StatusCreated, toDraftResponse(d.Snapshot()))
}

// Get returns the current draft state.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// Discard drops the draft without committing.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return
	}
	h.drafts.Discard(id)
	w.WriteHeader(http.StatusNoContent)
}

// Menu returns the item browser for the draft: the catalog filtered by the
// draft's stored query and category, annotated with selected quantities.
// Query parameters, when present, update the stored filter first, so typing
// in the search box keeps server and client state in step.
func (h *DraftHandler) Menu(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	query, category := d.Filter()
	params := r.URL.Query()
	if params.Has("query") {
		query = params.Get("query")
	}
	if params.Has("category") {
		category = params.Get("category")
		if category == "" {
			category = menu.CategoryAll
		}
	}
	if params.Has("query") || params.Has("category") {
		d.SetFilter(query, category)
	}

	selected := make(map[uuid.UUID]int)
	for _, l := range d.Snapshot().Selection {
		selected[l.Item.ID] = l.Quantity
	}

	items := h.picker.Filter(query, category)
	resp := make([]draftMenuItemResponse, len(items))
	for i, it := range items {
		resp[i] = draftMenuItemResponse{
			menuItemResponse: menuItemResponse{
				ID:          it.ID,
				Name:        it.Name,
				Category:    it.Category,
				Price:       it.Price,
				Description: it.Description,
				ImageURL:    h.images.URL(it.Image, 100),
			},
			SelectedQuantity: selected[it.ID],
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// SetFilter stores the item-browser filter state on the draft.
func (h *DraftHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	d.SetFilter(req.Query, req.Category)
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// AddItem adds one unit of a catalog item to the working selection.
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	item, found := h.catalog.Get(itemID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}

	d.AddItem(item)
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// IncrementItem raises the selected quantity of an item by one. An item that
// is not selected is left untouched.
func (h *DraftHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	h.adjustItem(w, r, func(d *order.Draft, itemID uuid.UUID) { d.IncrementItem(itemID) })
}

// DecrementItem lowers the selected quantity of an item by one, removing the
// line at quantity 1. An item that is not selected is left untouched.
func (h *DraftHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	h.adjustItem(w, r, func(d *order.Draft, itemID uuid.UUID) { d.DecrementItem(itemID) })
}

func (h *DraftHandler) adjustItem(w http.ResponseWriter, r *http.Request, adjust func(*order.Draft, uuid.UUID)) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	adjust(d, itemID)
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// AddPosition appends a new empty position to the draft.
func (h *DraftHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}
	d.AddPosition()
	writeJSON(w, http.StatusCreated, toDraftResponse(d.Snapshot()))
}

// RemovePosition deletes a position. The last remaining position is kept, so
// the call is a no-op then.
func (h *DraftHandler) RemovePosition(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	pid, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid position ID"})
		return
	}

	d.RemovePosition(pid)
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// RemoveLine deletes a line from a position; absent lines are a no-op.
func (h *DraftHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	pid, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid position ID"})
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	d.RemoveLine(pid, itemID)
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// Confirm merges the working selection into a position. An empty selection
// is a guarded no-op: nothing is merged and nothing is cleared.
func (h *DraftHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	pid, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid position ID"})
		return
	}

	if err := d.Confirm(pid); err != nil {
		if errors.Is(err, order.ErrPositionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "position not found"})
			return
		}
		// Empty selection: state is untouched, report it as-is.
	}
	writeJSON(w, http.StatusOK, toDraftResponse(d.Snapshot()))
}

// Commit converts the draft into an immutable order attached to its table.
// A draft with no lines is rejected; the table flips to occupied and the
// draft resets to a single empty position.
func (h *DraftHandler) Commit(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var seated table.Table
	committed, err := d.Commit(func(o order.Order) error {
		t, err := h.tables.AttachOrder(d.TableID(), o)
		if err != nil {
			return err
		}
		seated = t
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyDraft):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "order has no items"})
		case errors.Is(err, table.ErrTableOccupied):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table already has an order"})
		case errors.Is(err, table.ErrTableNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
		default:
			log.Printf("ERROR: commit draft: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	resp := commitResponse{
		Order: toOrderResponse(committed),
		Table: toTableResponse(seated),
	}
	h.hub.BroadcastEvent(enum.EventOrderCreated, resp.Table)
	writeJSON(w, http.StatusCreated, resp)
}

// --- Helpers ---

func (h *DraftHandler) draft(w http.ResponseWriter, r *http.Request) (*order.Draft, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return nil, false
	}
	d, ok := h.drafts.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "draft not found"})
		return nil, false
	}
	return d, true
}
