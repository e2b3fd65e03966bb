// Command seed prepares a database: it migrates the schema, creates or
// refreshes the admin account and, with -samples, adds demo watches.
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
	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"
	"watch-storefront/internal/domain/users"
	"watch-storefront/internal/logging"
	"watch-storefront/internal/store"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const adminCost = 10

func main() {
	samples := flag.Bool("samples", false, "also insert the demo watches when the catalog is empty")
	flag.Parse()

	if err := run(*samples); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(samples bool) error {
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
	if err := database.Migrate(db); err != nil {
		return err
	}
	st := store.New(db)
	defer st.Close()

	admin, err := seedAdmin(context.Background(), st, cfg.Seed)
	if err != nil {
		return err
	}
	log.Info("admin user ready", "email", admin.Email, "id", admin.ID)

	if samples {
		n, err := seedSamples(context.Background(), st, admin.ID)
		if err != nil {
			return err
		}
		log.Info("sample products seeded", "count", n)
	}
	return nil
}

func seedAdmin(ctx context.Context, st *store.Store, sc config.SeedConfig) (*users.User, error) {
	if sc.AdminPassword == "" {
		return nil, errors.New("SEED_ADMIN_PASSWORD is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(sc.AdminPassword), adminCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &users.User{
		Email:        sc.AdminEmail,
		Name:         sc.AdminName,
		Role:         users.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := st.UpsertUser(ctx, admin); err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}
	return admin, nil
}

// seedSamples inserts the demo watches unless the catalog already has
// products. It returns how many were inserted.
func seedSamples(ctx context.Context, st *store.Store, ownerID uint) (int, error) {
	existing, err := st.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, p := range samplesFor(ownerID) {
		p := p
		if err := st.CreateProduct(ctx, &p); err != nil {
			return 0, err
		}
	}
	return len(samplesFor(ownerID)), nil
}

func samplesFor(ownerID uint) []catalog.Product {
	str := func(s string) *string { return &s }
	year := func(y int) *int { return &y }
	price := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

	return []catalog.Product{
		{
			TitleEn:       "Rolex Daytona",
			TitleIt:       "Rolex Daytona",
			DescriptionEn: "Cosmograph in platinum with meteorite dial",
			DescriptionIt: "Cosmograph in platino con quadrante in meteorite",
			Price:         price(75000),
			Status:        catalog.StatusAvailable,
			Brand:         str("Rolex"),
			Model:         str("Daytona"),
			Year:          year(2021),
			Condition:     str("Excellent"),
			OwnerID:       &ownerID,
			Images: []media.Image{
				{URL: "/images/watches/daytona.jpg", IsMain: true},
				{URL: "/images/watches/daytona-detail1.jpg"},
				{URL: "/images/watches/daytona-detail2.jpg"},
			},
		},
		{
			TitleEn:       "Patek Philippe Nautilus",
			TitleIt:       "Patek Philippe Nautilus",
			DescriptionEn: "Stainless steel with blue dial",
			DescriptionIt: "Acciaio con quadrante blu",
			Price:         price(120000),
			Status:        catalog.StatusSold,
			Brand:         str("Patek Philippe"),
			Model:         str("Nautilus"),
			Year:          year(2020),
			Condition:     str("Like New"),
			OwnerID:       &ownerID,
			Images: []media.Image{
				{URL: "/images/watches/nautilus.jpg", IsMain: true},
				{URL: "/images/watches/nautilus-detail1.jpg"},
				{URL: "/images/watches/nautilus-detail2.jpg"},
			},
		},
	}
}
