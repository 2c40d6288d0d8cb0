// Command levelsvc runs the level service: a SQLite-backed HTTP API serving
// maze stage descriptors to the game.
//
// On first start against an empty database it seeds the built-in ten-stage
// set, so a bare `levelsvc` is enough for local development.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localfirst-games/mazerunner/levelsvc"
)

var (
	addr   = flag.String("addr", ":9090", "listen address")
	dbPath = flag.String("db", "levels.db", "path to the SQLite database")
	noSeed = flag.Bool("no-seed", false, "skip seeding built-in stages into an empty database")
)

func main() {
	flag.Parse()

	store, err := levelsvc.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open stage store: %v", err)
	}
	defer store.Close()

	if !*noSeed {
		n, err := levelsvc.Seed(context.Background(), store)
		if err != nil {
			log.Fatalf("Failed to seed stages: %v", err)
		}
		if n > 0 {
			log.Printf("Seeded %d stages into %s", n, *dbPath)
		}
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      levelsvc.NewServer(store, log.Default()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Level service listening on %s (db: %s)", *addr, *dbPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Level service failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Level service stopped")
}
