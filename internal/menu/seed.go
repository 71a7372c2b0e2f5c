package menu

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedCatalog returns the demo menu. Prices are in rubles.
func SeedCatalog() *Catalog {
	return NewCatalog([]Item{
		{
			ID:          uuid.New(),
			Name:        "Паста Карбонара",
			Category:    "Основные блюда",
			Price:       decimal.NewFromInt(450),
			Description: "Классическая итальянская паста",
			Image:       "pasta carbonara",
		},
		{
			ID:          uuid.New(),
			Name:        "Цезарь с курицей",
			Category:    "Салаты",
			Price:       decimal.NewFromInt(350),
			Description: "Свежий салат с курицей",
			Image:       "caesar salad",
		},
		{
			ID:          uuid.New(),
			Name:        "Стейк Рибай",
			Category:    "Основные блюда",
			Price:       decimal.NewFromInt(1200),
			Description: "Сочный говяжий стейк",
			Image:       "ribeye steak",
		},
		{
			ID:          uuid.New(),
			Name:        "Том Ям",
			Category:    "Супы",
			Price:       decimal.NewFromInt(400),
			Description: "Острый тайский суп",
			Image:       "tom yum soup",
		},
		{
			ID:          uuid.New(),
			Name:        "Тирамису",
			Category:    "Десерты",
			Price:       decimal.NewFromInt(300),
			Description: "Итальянский десерт",
			Image:       "tiramisu",
		},
		{
			ID:          uuid.New(),
			Name:        "Капучино",
			Category:    "Напитки",
			Price:       decimal.NewFromInt(180),
			Description: "Классический кофе",
			Image:       "cappuccino",
		},
	})
}
