package store

import (
	"context"
	"errors"
	"testing"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"
	"watch-storefront/internal/domain/users"
	"watch-storefront/internal/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.NewDB(t))
}

func seedProduct(t *testing.T, s *Store, images ...string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{
		TitleEn: "Rolex Daytona",
		TitleIt: "Rolex Daytona",
		Price:   decimal.NewNullDecimal(decimal.NewFromInt(75000)),
	}
	for i, url := range images {
		p.Images = append(p.Images, media.Image{URL: url, IsMain: i == 0})
	}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return p
}

func TestCreateAndGetProduct(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "https://cdn.example/daytona.jpg")
	if p.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if p.Status != catalog.StatusAvailable {
		t.Errorf("default status = %s, want AVAILABLE", p.Status)
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if !got.Price.Valid || !got.Price.Decimal.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("price = %v, want 75000", got.Price)
	}
	if len(got.Images) != 1 || got.Images[0].ProductID != p.ID || !got.Images[0].IsMain {
		t.Errorf("unexpected images %+v", got.Images)
	}
}

func TestGetProductNotFound(t *testing.T) {
	s := newStore(t)
	if _, err := s.GetProduct(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNullPriceRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	p := &catalog.Product{TitleEn: "Nautilus", TitleIt: "Nautilus", Status: catalog.StatusSold}
	if err := s.CreateProduct(ctx, p); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Price.Valid {
		t.Errorf("expected NULL price, got %v", got.Price.Decimal)
	}
	if got.Status != catalog.StatusSold {
		t.Errorf("status = %s, want SOLD", got.Status)
	}
}

func TestUpdateProductAppendsImage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "https://cdn.example/one.jpg")

	got, err := s.UpdateProduct(ctx, p.ID,
		map[string]interface{}{"title_en": "Daytona Paul Newman"},
		ImageChange{Mode: ImageAppend, Image: media.Image{URL: "https://cdn.example/two.jpg", IsMain: true}},
	)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if got.TitleEn != "Daytona Paul Newman" {
		t.Errorf("title = %q", got.TitleEn)
	}
	if len(got.Images) != 2 {
		t.Fatalf("expected 2 images after append, got %d", len(got.Images))
	}
}

func TestReplaceImagesLeavesExactlyOne(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "https://cdn.example/a.jpg", "https://cdn.example/b.jpg", "https://cdn.example/c.jpg")

	got, err := s.UpdateProduct(ctx, p.ID, nil, ImageChange{Mode: ImageReplace, Image: media.Image{URL: "https://cdn.example/new.jpg", IsMain: true}})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if len(got.Images) != 1 || got.Images[0].URL != "https://cdn.example/new.jpg" {
		t.Fatalf("unexpected images after replace: %+v", got.Images)
	}

	n, err := s.CountImages(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountImages: %v", err)
	}
	if n != 1 {
		t.Errorf("image rows = %d, want 1", n)
	}
}

func TestUpdateProductRollsBackOnFailure(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	p := seedProduct(t, s, "https://cdn.example/a.jpg", "https://cdn.example/b.jpg")

	// fail every image insert from here on
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_images", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "images" {
			_ = tx.AddError(errors.New("insert refused"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = s.UpdateProduct(ctx, p.ID,
		map[string]interface{}{"title_en": "changed"},
		ImageChange{Mode: ImageReplace, Image: media.Image{URL: "https://cdn.example/new.jpg"}},
	)
	if err == nil {
		t.Fatal("expected the replace to fail")
	}

	n, err := s.CountImages(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountImages: %v", err)
	}
	if n != 2 {
		t.Errorf("image rows = %d after failed replace, want the original 2", n)
	}
	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.TitleEn != "Rolex Daytona" {
		t.Errorf("title = %q, field update was not rolled back", got.TitleEn)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	s := newStore(t)
	_, err := s.UpdateProduct(context.Background(), "missing", map[string]interface{}{"title_en": "x"}, ImageChange{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "https://cdn.example/a.jpg", "https://cdn.example/b.jpg")

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := s.GetProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("product still present: %v", err)
	}
	if n, _ := s.CountImages(ctx, p.ID); n != 0 {
		t.Errorf("%d orphan images left", n)
	}

	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListProductsAndCounts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedProduct(t, s, "https://cdn.example/a.jpg")
	sold := &catalog.Product{TitleEn: "Nautilus", TitleIt: "Nautilus", Status: catalog.StatusSold}
	if err := s.CreateProduct(ctx, sold); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	list, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("listed %d products, want 2", len(list))
	}

	counts, err := s.CountProductsByStatus(ctx)
	if err != nil {
		t.Fatalf("CountProductsByStatus: %v", err)
	}
	if counts[catalog.StatusAvailable] != 1 || counts[catalog.StatusSold] != 1 || counts[catalog.StatusReserved] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestUsers(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := &users.User{Email: " Admin@Example.com ", Name: "Admin", PasswordHash: "h1", Role: users.RoleAdmin}
	if err := s.UpsertUser(ctx, u); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	again := &users.User{Email: "admin@example.com", Name: "Edo", PasswordHash: "h2", Role: users.RoleAdmin}
	if err := s.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser (update): %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("upsert created a second user: %d != %d", again.ID, u.ID)
	}

	got, err := s.UserByEmail(ctx, "ADMIN@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if got.Name != "Edo" || got.PasswordHash != "h2" {
		t.Errorf("user not updated: %+v", got)
	}

	if err := s.UpdatePasswordHash(ctx, got.ID, "h3"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}
	if err := s.UpdatePasswordHash(ctx, 9999, "h3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePasswordHash on missing user err = %v", err)
	}

	owner := got.ID
	p := &catalog.Product{TitleEn: "Speedmaster", TitleIt: "Speedmaster", OwnerID: &owner}
	if err := s.CreateProduct(ctx, p); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	list, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(list) != 1 || len(list[0].Products) != 1 {
		t.Fatalf("unexpected users %+v", list)
	}
}

func TestSaveContentKeepsHistory(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c, err := s.SaveContent(ctx, ContentInput{ContentKey: "home.title", Page: "home", Value: "Vintage watches"}, "admin@example.com")
	if err != nil {
		t.Fatalf("SaveContent (create): %v", err)
	}
	if c.DefaultValue != "Vintage watches" || c.Type != "text" {
		t.Errorf("unexpected new content %+v", c)
	}

	if _, err := s.SaveContent(ctx, ContentInput{ContentKey: "home.title", Value: "Orologi d'epoca"}, "admin@example.com"); err != nil {
		t.Fatalf("SaveContent (update): %v", err)
	}

	got, err := s.Content(ctx, "home.title")
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if got.CurrentValue != "Orologi d'epoca" || got.DefaultValue != "Vintage watches" {
		t.Errorf("unexpected content %+v", got)
	}

	hist, err := s.ContentHistory(ctx, "home.title")
	if err != nil {
		t.Fatalf("ContentHistory: %v", err)
	}
	if len(hist) != 1 || hist[0].Value != "Vintage watches" || hist[0].UserID != "admin@example.com" {
		t.Errorf("unexpected history %+v", hist)
	}

	if _, err := s.Content(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Content(missing) err = %v", err)
	}
}
