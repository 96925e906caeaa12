package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/config"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/database"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/httpx"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)

	handler := routes.Wire(app.New(db, bearerServer, cfg))

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
