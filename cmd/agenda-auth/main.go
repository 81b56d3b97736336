package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/baszoetekouw/SurfChange/config"
	"github.com/baszoetekouw/SurfChange/internal/auth"
)

// agenda-auth runs the interactive device-code sign-in once and writes the
// token file that agendad reads at startup.
func main() {
	logger := log.New(os.Stderr, "agenda-auth ", log.LstdFlags)

	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	// The device flow normally expires server-side after 15 minutes; the
	// local deadline just keeps a forgotten terminal from hanging forever.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Minute)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authn := auth.New(cfg.Provider.Tenant, cfg.Provider.ClientID, cfg.Provider.Scopes, cfg.Auth.TokenFile)
	if err := authn.Login(ctx, os.Stdout); err != nil {
		logger.Fatalf("sign-in failed: %v", err)
	}

	logger.Printf("token saved to %s", cfg.Auth.TokenFile)
}
