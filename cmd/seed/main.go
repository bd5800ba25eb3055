// cmd/seed resets the configured state store to the default dataset.
// Usage: go run ./cmd/seed [-purge]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/infra"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	purge := flag.Bool("purge", false, "delete every entry instead of writing the defaults")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal().Msg("nothing to seed: STORE_DRIVER=memory keeps no data between runs")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open state store")
	}
	defer closeStore()

	repo := repository.NewStateRepository(store, cfg.StorePrefix)
	if *purge {
		if err := repo.Purge(ctx); err != nil {
			log.Fatal().Err(err).Msg("purge failed")
		}
		fmt.Printf("✅ %s store purged (prefix %q)\n", cfg.StoreDriver, cfg.StorePrefix)
		return
	}

	st, err := repo.Reset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reset failed")
	}
	fmt.Printf("✅ %s store reset: %d branches, %d users, %d products\n",
		cfg.StoreDriver, len(st.Branches), len(st.Users), len(st.Products))
	for _, u := range st.Users {
		fmt.Printf("   %-10s password %s123\n", u.Username, u.Username)
	}
}
