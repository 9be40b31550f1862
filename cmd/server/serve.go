package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dom/league-roulette/internal/api"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first load runs in the background; the page shows a loading
	// state until it finishes.
	a.services.Catalog.Start(ctx)

	hub := websocket.NewHub(websocket.TableConfig{
		Catalog:   a.services.Catalog,
		Rules:     a.rules,
		Interval:  a.cfg.TickInterval,
		Scheduler: roulette.TickerScheduler{},
	})
	go hub.Run()

	router := api.NewRouter(a.services, hub, a.cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + a.cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Close tables first so their tick loops stop writing to connections.
	hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("Server stopped")
	return nil
}
