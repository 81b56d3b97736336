package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/baszoetekouw/SurfChange/config"
	"github.com/baszoetekouw/SurfChange/internal/api"
	"github.com/baszoetekouw/SurfChange/internal/auth"
	"github.com/baszoetekouw/SurfChange/internal/graph"
	"github.com/baszoetekouw/SurfChange/internal/rooms"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "agendad ", log.LstdFlags)

	// A .env file is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("invalid timezone %q: %v", cfg.Provider.Timezone, err)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Authentication: the token file must already exist, written by the
	// agenda-auth command.
	authn := auth.New(cfg.Provider.Tenant, cfg.Provider.ClientID, cfg.Provider.Scopes, cfg.Auth.TokenFile)
	httpClient, err := authn.HTTPClient(ctx)
	if err != nil {
		logger.Fatalf("failed to set up authentication: %v", err)
	}
	logger.Println("authentication initialized")

	graphClient := graph.NewClient(httpClient, cfg.Provider.BaseURL, cfg.Provider.PageSize)
	directory := rooms.NewDirectory(graphClient, cfg.Rooms.TTL)

	// Initialize router
	handler := api.NewHandler(graphClient, directory, loc, cfg.Provider.MailDomain)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimit:     rate.Limit(cfg.Server.RateLimitPerSec),
		RateBurst:     cfg.Server.RateLimitBurst,
		CacheTTL:      cfg.Server.CacheTTL,
		TemplatesGlob: "templates/*.html",
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
