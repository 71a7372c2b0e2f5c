package handler_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/resto-crm/api/internal/handler"
	"github.com/resto-crm/api/internal/menu"
)

func setupMenuRouter() *chi.Mux {
	h := handler.NewMenuHandler(menu.SeedCatalog())
	r := chi.NewRouter()
	r.Route("/menu", h.RegisterRoutes)
	return r
}

func TestMenuList_All(t *testing.T) {
	router := setupMenuRouter()

	rr := doRequest(t, router, "GET", "/menu", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 6 {
		t.Fatalf("items: got %d, want 6", len(resp))
	}
	if resp[0]["name"] != "Паста Карбонара" {
		t.Errorf("first item: got %v, want catalog order preserved", resp[0]["name"])
	}
	if resp[0]["image_url"] == "" {
		t.Error("expected resolved image URL")
	}
}

func TestMenuList_QueryFilter(t *testing.T) {
	router := setupMenuRouter()

	rr := doRequest(t, router, "GET", "/menu?query="+url.QueryEscape("паста"), nil)

	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("items: got %d, want 1", len(resp))
	}
	if resp[0]["name"] != "Паста Карбонара" {
		t.Errorf("name: got %v, want Паста Карбонара", resp[0]["name"])
	}
}

func TestMenuList_CategoryFilter(t *testing.T) {
	router := setupMenuRouter()

	rr := doRequest(t, router, "GET", "/menu?category="+url.QueryEscape("Основные блюда"), nil)

	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Fatalf("items: got %d, want 2", len(resp))
	}
}

func TestMenuList_NoMatchesIsEmptyList(t *testing.T) {
	router := setupMenuRouter()

	rr := doRequest(t, router, "GET", "/menu?query=burger", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if resp := decodeListResponse(t, rr); len(resp) != 0 {
		t.Errorf("items: got %d, want 0", len(resp))
	}
}

func TestMenuCategories(t *testing.T) {
	router := setupMenuRouter()

	rr := doRequest(t, router, "GET", "/menu/categories", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp []string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"Основные блюда", "Салаты", "Супы", "Десерты", "Напитки"}
	if len(resp) != len(want) {
		t.Fatalf("categories: got %v, want %v", resp, want)
	}
	for i := range want {
		if resp[i] != want[i] {
			t.Errorf("categories[%d]: got %v, want %v", i, resp[i], want[i])
		}
	}
}
