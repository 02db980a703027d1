package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"reviewboard/internal/api"
	"reviewboard/internal/config"
	"reviewboard/internal/database"
	"reviewboard/internal/reviews"
	"reviewboard/internal/websocket"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.Gin.Mode)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	apiServer, err := api.NewServer(reviews.NewService(db), hub)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apiServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting HTTP server on %s (%s store)", cfg.Addr(), cfg.Database.Driver)
	log.Printf("Home page: http://%s/", cfg.Addr())
	log.Printf("Review feed: ws://%s/ws", cfg.Addr())

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
}
