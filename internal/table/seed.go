package table

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto-crm/api/internal/order"
)

// SeedLedger returns the demo floor: four tables, one of which already has a
// committed order.
func SeedLedger() *Ledger {
	l := NewLedger()
	seeds := []struct {
		number int
		seats  int
		order  *order.Order
	}{
		{number: 1, seats: 4},
		{number: 2, seats: 2, order: &order.Order{
			ID: uuid.New(),
			Items: []order.Item{
				{Name: "Паста Карбонара", Quantity: 2, Price: decimal.NewFromInt(450)},
			},
			Total: decimal.NewFromInt(900),
		}},
		{number: 3, seats: 6},
		{number: 4, seats: 4},
	}
	for _, s := range seeds {
		t, err := l.Create(s.number, s.seats)
		if err != nil {
			// Seed data is static and valid.
			panic(err)
		}
		if s.order != nil {
			if _, err := l.AttachOrder(t.ID, *s.order); err != nil {
				panic(err)
			}
		}
	}
	return l
}
