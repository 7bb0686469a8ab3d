// Command yalah is the headless client daemon for the YalaH ntla9aw club
// platform. It restores or establishes a session, keeps the badge counters
// polling, aggregates the notification feed, and serves a local status
// endpoint.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yalah/internal/api"
	"yalah/internal/badge"
	"yalah/internal/config"
	"yalah/internal/featureflags"
	"yalah/internal/feed"
	"yalah/internal/session"
	"yalah/internal/shell"
	"yalah/internal/statusapi"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vault, cleanup, err := buildVault(cfg)
	if err != nil {
		log.Fatalf("Failed to open session vault: %v", err)
	}
	defer cleanup()

	sessions := session.NewStore(ctx, vault)
	client := api.NewClient(cfg.APIBaseURL, nil, sessions)

	if _, ok := sessions.UserID(); !ok {
		if cfg.Username == "" || cfg.Password == "" {
			log.Fatal("No persisted session and no YALAH_USERNAME/YALAH_PASSWORD provided")
		}
		user, tokens, err := client.Login(ctx, cfg.Username, cfg.Password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		if err := sessions.Login(ctx, *user, *tokens); err != nil {
			log.Fatalf("Failed to persist session: %v", err)
		}
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)
	aggregator := feed.NewAggregator(client, sessions)
	poller := badge.NewPoller(client, sessions, cfg.RequestsPollInterval, cfg.MessagesPollInterval)
	sh := shell.New(poller, flags, sessions)

	// A change in the request badge means the pending-action feed moved;
	// rebuild it so the status surface stays close to server truth.
	poller.OnChange(func(badge.Counts) {
		if _, err := aggregator.Build(ctx); err != nil {
			log.Printf("Feed rebuild failed: %v", err)
		}
	})

	if _, err := aggregator.Build(ctx); err != nil {
		log.Printf("Initial feed build failed: %v", err)
	}
	poller.Start(ctx)

	srv := statusapi.NewServer(sessions, poller, sh, flags)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Status server shutdown error: %v", err)
		}
	}()

	log.Printf("Status server listening on %s...", cfg.StatusAddr)
	if err := srv.Listen(cfg.StatusAddr); err != nil {
		log.Fatal(err)
	}
}

func buildVault(cfg *config.Config) (session.Vault, func(), error) {
	switch cfg.VaultBackend {
	case config.VaultBackendRedis:
		vault, err := session.NewRedisVault(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return vault, func() { _ = vault.Close() }, nil
	default:
		return session.NewFileVault(cfg.VaultPath), func() {}, nil
	}
}
