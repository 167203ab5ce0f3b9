package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/edvin/insightcrm/internal/api"
	"github.com/edvin/insightcrm/internal/config"
	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/db"
	"github.com/edvin/insightcrm/internal/logging"
	"github.com/edvin/insightcrm/internal/metrics"
	"github.com/edvin/insightcrm/migrations"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	if len(os.Args) >= 2 && os.Args[1] == "create-user" {
		createUser(os.Args[2:])
		return
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, migrations.FS); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	metrics.RegisterPgxPoolMetrics(prometheus.DefaultRegisterer, pool)

	tlsConfig, err := cfg.ServerTLS()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure TLS")
	}

	srv := api.NewServer(logger, pool, cfg)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		TLSConfig:    tlsConfig,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Bool("tls", tlsConfig != nil).Msg("starting CRM API server")
		var err error
		if tlsConfig != nil {
			// Certificates are already loaded into TLSConfig.
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func createUser(args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "Email address (required)")
	password := fs.String("password", "", "Password, at least 8 characters (required)")
	name := fs.String("name", "", "Display name")
	fs.Parse(args)

	if *email == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "error: --email and a --password of at least 8 characters are required")
		fmt.Fprintln(os.Stderr, "usage: crm-api create-user --email <email> --password <password> [--name <name>]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := core.NewAuthService(pool, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	user, token, err := svc.Register(ctx, *email, *password, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully.\n\n")
	fmt.Printf("  Email:  %s\n", user.Email)
	fmt.Printf("  ID:     %s\n", user.ID)
	fmt.Printf("  Token:  %s\n", token)
}
