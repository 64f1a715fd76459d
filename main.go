package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"waiter-telegram/bot"
	"waiter-telegram/config"
	"waiter-telegram/engine"
	"waiter-telegram/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.Telegram.Token == "" {
		log.Fatal().Msg("TOKEN not set")
	}

	// Stores degrade to empty collections on any load problem; they never
	// fail construction.
	catalog := store.NewCatalog(cfg.Storage.MenuPath, cfg.Restaurant.Taxonomy)
	orders := store.NewOrders(cfg.Storage.OrdersPath, cfg.Restaurant.TableCount)

	eng := engine.New(catalog, orders)

	b, err := bot.New(cfg, eng)
	if err != nil {
		log.Fatal().Err(err).Msg("bot")
	}

	log.Info().Int("tables", cfg.Restaurant.TableCount).Msg("bot started")
	b.Start()
}
