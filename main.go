package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/MehmetDemirkok/yurtsever/internal/config"
	"github.com/MehmetDemirkok/yurtsever/internal/database"
	"github.com/MehmetDemirkok/yurtsever/internal/router"
	"github.com/MehmetDemirkok/yurtsever/internal/seed"
	"github.com/MehmetDemirkok/yurtsever/internal/store"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: config.yaml in cwd)")
	seedCount := flag.Int("seed", 0, "insert N demo records and exit")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	// bring the stays table to the latest schema generation; a failed
	// migration is fatal, never run against a partially migrated store
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	if *seedCount > 0 {
		if err := seed.Populate(store.NewStayStore(db), *seedCount); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		log.Printf("%d demo records created", *seedCount)
		return
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
