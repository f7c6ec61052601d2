// Command migrate creates the MySQL schema used by the bidding engine
package main

import (
	"bidexpert/internal/config"
	"bidexpert/internal/repository"
	"bidexpert/utils"
	"context"
	"flag"
	"time"
)

func main() {
	seed := flag.Bool("seed", false, "load the demo auction into -tenant after migrating")
	tenant := flag.String("tenant", "demo", "tenant for -seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repository.OpenMySQL(ctx, cfg.MySQL.DSN())
	if err != nil {
		utils.Fatal("failed to connect", map[string]any{"host": cfg.MySQL.Host, "error": err.Error()})
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		utils.Fatal("migration failed", map[string]any{"error": err.Error()})
	}
	utils.Info("schema up to date", map[string]any{"database": cfg.MySQL.Database})

	if *seed {
		if err := repository.SeedDemo(ctx, repository.NewMySQLRepo(db), *tenant); err != nil {
			utils.Fatal("seeding failed", map[string]any{"error": err.Error()})
		}
		utils.Info("demo data seeded", map[string]any{"tenant_id": *tenant})
	}
}
