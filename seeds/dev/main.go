package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"github.com/edvin/insightcrm/internal/config"
	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/db"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Resolve path relative to this source file so it works regardless of cwd.
	_, thisFile, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(thisFile), "fixtures.yaml")
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open fixtures: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	f, err := parseFixtures(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, 4)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	services := core.NewServices(pool, core.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTIssuer: cfg.JWTIssuer,
		TokenTTL:  cfg.JWTTTL,
	})

	fmt.Println("Seeding CRM database...")
	s := &seeder{
		users:         services.Auth,
		customers:     services.Customer,
		relationships: services.Relationship,
		out:           os.Stdout,
	}
	res, err := s.run(ctx, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %d created, %d already present.\n", res.Created, res.Skipped)
	for _, u := range f.Users {
		fmt.Printf("    Login: %s / %s\n", u.Email, u.Password)
	}
}
