package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/resto-crm/api/internal/config"
	"github.com/resto-crm/api/internal/menu"
	"github.com/resto-crm/api/internal/order"
	"github.com/resto-crm/api/internal/prefs"
	"github.com/resto-crm/api/internal/router"
	"github.com/resto-crm/api/internal/staff"
	"github.com/resto-crm/api/internal/table"
	"github.com/resto-crm/api/internal/ws"
)

func main() {
	cfg := config.Load()

	// All state lives in memory for the session; only the preferences file
	// survives a restart.
	catalog := menu.SeedCatalog()
	ledger := table.SeedLedger()
	drafts := order.NewDraftStore()
	directory := staff.SeedDirectory()
	preferences := prefs.Open(cfg.PrefsPath)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, catalog, ledger, drafts, directory, preferences, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
