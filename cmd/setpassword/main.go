// Command setpassword replaces the password of an existing account.
//
//	go run ./cmd/setpassword -email admin@example.com -password 'new-secret1'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"watch-storefront/config"
	"watch-storefront/database"
	authapi "watch-storefront/internal/api/auth"
	"watch-storefront/internal/logging"
	"watch-storefront/internal/store"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if err := run(*email, *password); err != nil {
		slog.Error("setpassword failed", "error", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	if email == "" || password == "" {
		return errors.New("-email and -password are required")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	log, err := logging.Init(logging.Config(cfg.Log))
	if err != nil {
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	st := store.New(db)
	defer st.Close()

	if err := setPassword(context.Background(), st, email, password); err != nil {
		return err
	}
	log.Info("password updated", "email", email)
	return nil
}

func setPassword(ctx context.Context, st *store.Store, email, password string) error {
	u, err := st.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", email, err)
	}
	hash, err := authapi.HashPassword(password)
	if err != nil {
		return err
	}
	return st.UpdatePasswordHash(ctx, u.ID, hash)
}
