package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryAll bypasses category filtering in Picker.Filter.
const CategoryAll = "all"

// Item is a single entry of the menu catalog. Items are immutable once the
// catalog is built; order commits snapshot name and price instead of holding
// a reference.
type Item struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	Image       string
}

// Catalog is the fixed set of purchasable items in load order.
type Catalog struct {
	items []Item
	byID  map[uuid.UUID]Item
}

// NewCatalog builds a catalog from the given items. Load order is preserved
// and is the order every listing and filter result uses.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[uuid.UUID]Item, len(items)),
	}
	copy(c.items, items)
	for _, it := range c.items {
		c.byID[it.ID] = it
	}
	return c
}

// Items returns all items in load order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks an item up by identity.
func (c *Catalog) Get(id uuid.UUID) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Categories returns the distinct category labels in first-appearance order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Picker filters the catalog for display. The same picker serves the menu
// screen and the in-draft item browser.
type Picker struct {
	catalog *Catalog
}

// NewPicker creates a Picker over the given catalog.
func NewPicker(catalog *Catalog) *Picker {
	return &Picker{catalog: catalog}
}

// Filter returns the visible subset for a free-text query and a category.
// The query matches case-insensitively as a substring of the item name only;
// category CategoryAll disables category filtering. Results keep catalog
// order, and an empty result is a valid state, not an error.
func (p *Picker) Filter(query, category string) []Item {
	q := strings.ToLower(query)
	out := []Item{}
	for _, it := range p.catalog.items {
		if category != CategoryAll && it.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}
