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
	"github.com/resto-crm/api/internal/order"
	"github.com/resto-crm/api/internal/table"
)

// TableStore defines the ledger methods needed by table handlers.
// Satisfied by *table.Ledger; narrow interface for testability.
type TableStore interface {
	Create(number, seats int) (table.Table, error)
	List() []table.Table
	Delete(id uuid.UUID) error
	Reserve(id uuid.UUID) (table.Table, error)
	Release(id uuid.UUID) (table.Table, error)
	CloseOrder(id uuid.UUID) (table.Table, error)
}

// DraftSweeper drops the open draft of a deleted table.
// Satisfied by *order.DraftStore.
type DraftSweeper interface {
	DiscardForTable(tableID uuid.UUID)
}

// Broadcaster pushes floor events to connected clients.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// TableHandler handles table ledger endpoints.
type TableHandler struct {
	store  TableStore
	drafts DraftSweeper
	hub    Broadcaster
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore, drafts DraftSweeper, hub Broadcaster) *TableHandler {
	return &TableHandler{store: store, drafts: drafts, hub: hub}
}

// RegisterRoutes registers table endpoints on the given Chi router.
// Expected to be mounted at /tables.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/reserve", h.Reserve)
	r.Delete("/{id}/reservation", h.Release)
	r.Post("/{id}/order/close", h.CloseOrder)
}

// --- Request / Response types ---

type createTableRequest struct {
	Number int `json:"number"`
	Seats  int `json:"seats"`
}

type orderItemResponse struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type orderResponse struct {
	ID    uuid.UUID           `json:"id"`
	Items []orderItemResponse `json:"items"`
	Total decimal.Decimal     `json:"total"`
}

type tableResponse struct {
	ID     uuid.UUID      `json:"id"`
	Number int            `json:"number"`
	Seats  int            `json:"seats"`
	Status string         `json:"status"`
	Order  *orderResponse `json:"order,omitempty"`
}

func toOrderResponse(o order.Order) orderResponse {
	resp := orderResponse{
		ID:    o.ID,
		Items: make([]orderItemResponse, len(o.Items)),
		Total: o.Total,
	}
	for i, it := range o.Items {
		resp.Items[i] = orderItemResponse{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	return resp
}

func toTableResponse(t table.Table) tableResponse {
	resp := tableResponse{
		ID:     t.ID,
		Number: t.Number,
		Seats:  t.Seats,
		Status: t.Status,
	}
	if t.Order != nil {
		o := toOrderResponse(*t.Order)
		resp.Order = &o
	}
	return resp
}

// --- Handlers ---

// List returns all tables in insertion order.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables := h.store.List()
	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new table. It starts free with no order.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	t, err := h.store.Create(req.Number, req.Seats)
	if err != nil {
		if errors.Is(err, table.ErrInvalidNumber) || errors.Is(err, table.ErrInvalidSeats) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toTableResponse(t)
	h.hub.BroadcastEvent(enum.EventTableCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// Delete removes a table and any order attached to it. There is no undo.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, table.ErrTableNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: delete table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.drafts.DiscardForTable(id)
	h.hub.BroadcastEvent(enum.EventTableDeleted, map[string]uuid.UUID{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// Reserve marks a free table as reserved.
func (h *TableHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	t, err := h.store.Reserve(id)
	if err != nil {
		switch {
		case errors.Is(err, table.ErrTableNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
		case errors.Is(err, table.ErrTableNotFree):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table is not free"})
		default:
			log.Printf("ERROR: reserve table: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	resp := toTableResponse(t)
	h.hub.BroadcastEvent(enum.EventTableReserved, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Release returns a reserved table to free. Releasing a table that is not
// reserved changes nothing and still answers with the current state.
func (h *TableHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	t, err := h.store.Release(id)
	if err != nil {
		if errors.Is(err, table.ErrTableNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: release table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toTableResponse(t)
	h.hub.BroadcastEvent(enum.EventTableReleased, resp)
	writeJSON(w, http.StatusOK, resp)
}

// CloseOrder clears the table's order and frees the table. Closing a table
// with no order changes nothing and still answers with the current state.
func (h *TableHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	t, err := h.store.CloseOrder(id)
	if err != nil {
		if errors.Is(err, table.ErrTableNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: close order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toTableResponse(t)
	h.hub.BroadcastEvent(enum.EventOrderClosed, resp)
	writeJSON(w, http.StatusOK, resp)
}
