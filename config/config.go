package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"waiter-telegram/models"
)

type Config struct {
	Telegram   TelegramConfig
	Storage    StorageConfig
	Restaurant RestaurantConfig
}

type TelegramConfig struct {
	Token string
}

type StorageConfig struct {
	MenuPath   string
	OrdersPath string
}

type RestaurantConfig struct {
	TableCount int
	Taxonomy   models.Taxonomy
}

// DefaultTaxonomy is the fixed category tree of the restaurant. It lives in
// configuration rather than the data model so tests can substitute their own
// tree without touching the entity types.
func DefaultTaxonomy() models.Taxonomy {
	return models.Taxonomy{
		MainCategories: []string{"Кухня", "Бар"},
		Subcategories: map[string][]string{
			"Кухня": {"Закуски", "Гарниры", "Горячее", "Десерты", "Салаты"},
			"Бар":   {"Коктейли", "Алкоголь", "Пиво", "Лимонады", "Чай"},
		},
		Fallback: "Кухня",
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	tableCount, _ := strconv.Atoi(getEnv("TABLE_COUNT", "11"))
	if tableCount < 1 {
		tableCount = 11
	}

	return &Config{
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Storage: StorageConfig{
			MenuPath:   getEnv("MENU_DATA_PATH", "data/menu.json"),
			OrdersPath: getEnv("ORDERS_DATA_PATH", "data/orders.json"),
		},
		Restaurant: RestaurantConfig{
			TableCount: tableCount,
			Taxonomy:   DefaultTaxonomy(),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
