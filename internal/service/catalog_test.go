package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/store"
	"watch-storefront/internal/testutil"

	"github.com/shopspring/decimal"
)

type fakeUploader struct {
	url   string
	err   error
	calls int
	body  []byte
}

func (f *fakeUploader) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	f.calls++
	f.body, _ = io.ReadAll(r)
	return f.url, f.err
}

type fakeEvents struct {
	events []RevalidateEvent
}

func (f *fakeEvents) Publish(ctx context.Context, key string, value interface{}) error {
	f.events = append(f.events, value.(RevalidateEvent))
	return nil
}

type fakeCache struct {
	products    []catalog.Product
	hit         bool
	gen         int64
	sets        int
	skipped     int
	invalidated int
	beforeSet   func()
}

func (f *fakeCache) GetProducts(ctx context.Context) ([]catalog.Product, bool, error) {
	return f.products, f.hit, nil
}

func (f *fakeCache) Generation(ctx context.Context) (int64, error) {
	return f.gen, nil
}

func (f *fakeCache) SetProducts(ctx context.Context, gen int64, products []catalog.Product) (bool, error) {
	if hook := f.beforeSet; hook != nil {
		f.beforeSet = nil
		hook()
	}
	if gen != f.gen {
		f.skipped++
		return false, nil
	}
	f.sets++
	f.products = products
	f.hit = true
	return true, nil
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.gen++
	f.hit = false
	f.products = nil
	return nil
}

func strp(s string) *string { return &s }

func newService(t *testing.T, opts ...Option) (*CatalogService, *store.Store) {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	return NewCatalogService(st, opts...), st
}

func TestCreateRoundTrip(t *testing.T) {
	ev := &fakeEvents{}
	svc, _ := newService(t, WithEvents(ev))
	ctx := context.Background()

	in := ProductInput{
		TitleEn:       strp("Rolex Daytona"),
		TitleIt:       strp("Rolex Daytona IT"),
		DescriptionEn: strp("Platinum cosmograph"),
		DescriptionIt: strp("Cosmograph in platino"),
		Price:         strp("75000"),
		Brand:         strp("Rolex"),
		Year:          strp("2021"),
		ImageURL:      strp("https://cdn.example/daytona.jpg"),
	}
	created, err := svc.Create(ctx, 7, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TitleEn != "Rolex Daytona" || got.TitleIt != "Rolex Daytona IT" ||
		got.DescriptionEn != "Platinum cosmograph" || got.DescriptionIt != "Cosmograph in platino" {
		t.Errorf("bilingual fields changed: %+v", got)
	}
	if !got.Price.Valid || !got.Price.Decimal.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("price = %v", got.Price)
	}
	if got.Status != catalog.StatusAvailable {
		t.Errorf("status = %s, want default AVAILABLE", got.Status)
	}
	if got.OwnerID == nil || *got.OwnerID != 7 {
		t.Errorf("owner = %v, want 7", got.OwnerID)
	}
	if got.Year == nil || *got.Year != 2021 {
		t.Errorf("year = %v", got.Year)
	}
	if len(got.Images) != 1 || !got.Images[0].IsMain {
		t.Errorf("images = %+v", got.Images)
	}

	if len(ev.events) != 1 || ev.events[0].Action != "create" || len(ev.events[0].Paths) != 2 {
		t.Errorf("unexpected revalidate events %+v", ev.events)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	cases := map[string]ProductInput{
		"missing title":  {Price: strp("10")},
		"blank title":    {TitleEn: strp("  ")},
		"bad price":      {TitleEn: strp("x"), Price: strp("ten")},
		"negative price": {TitleEn: strp("x"), Price: strp("-1")},
		"bad status":     {TitleEn: strp("x"), Status: strp("GONE")},
		"bad year":       {TitleEn: strp("x"), Year: strp("19x0")},
		"year range":     {TitleEn: strp("x"), Year: strp("3000")},
		"bad image url":  {TitleEn: strp("x"), ImageURL: strp("not a url")},
	}
	for name, in := range cases {
		if _, err := svc.Create(ctx, 0, in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", name, err)
		}
	}

	list, err := st.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d products persisted by invalid requests", len(list))
	}
}

func TestUpdateAppendsImageURL(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Nautilus"), ImageURL: strp("https://cdn.example/1.jpg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(ctx, p.ID, ProductInput{
		Status:   strp("sold"),
		Price:    strp(""),
		ImageURL: strp("https://cdn.example/2.jpg"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != catalog.StatusSold {
		t.Errorf("status = %s", got.Status)
	}
	if got.Price.Valid {
		t.Errorf("price should be cleared, got %v", got.Price.Decimal)
	}
	if len(got.Images) != 2 {
		t.Errorf("expected appended image, got %d images", len(got.Images))
	}
	if got.TitleEn != "Nautilus" {
		t.Errorf("untouched title changed to %q", got.TitleEn)
	}

	if _, err := svc.AddImage(ctx, p.ID, "https://cdn.example/3.jpg"); err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	again, _ := svc.Get(ctx, p.ID)
	if len(again.Images) != 3 {
		t.Errorf("AddImage: %d images, want 3", len(again.Images))
	}
}

func TestUpdateWithUploadReplacesImages(t *testing.T) {
	up := &fakeUploader{url: "https://res.cloudinary.com/demo/orologi/new.jpg"}
	svc, st := newService(t, WithUploader(up))
	ctx := context.Background()

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Submariner"), ImageURL: strp("https://cdn.example/1.jpg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddImage(ctx, p.ID, "https://cdn.example/2.jpg"); err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	got, err := svc.UpdateWithUpload(ctx, p.ID,
		ProductInput{TitleEn: strp("Submariner 5513"), Price: strp("18500.50")},
		&Upload{File: bytes.NewReader([]byte("jpeg-bytes")), Filename: "sub.jpg"},
	)
	if err != nil {
		t.Fatalf("UpdateWithUpload: %v", err)
	}
	if up.calls != 1 || string(up.body) != "jpeg-bytes" {
		t.Errorf("uploader saw %d calls, body %q", up.calls, up.body)
	}
	if len(got.Images) != 1 || got.Images[0].URL != up.url || !got.Images[0].IsMain {
		t.Fatalf("images after replace = %+v", got.Images)
	}
	if got.Images[0].Alt == nil || *got.Images[0].Alt != "Submariner 5513 image" {
		t.Errorf("alt = %v", got.Images[0].Alt)
	}
	if !got.Price.Decimal.Equal(decimal.RequireFromString("18500.5")) {
		t.Errorf("price = %v", got.Price.Decimal)
	}

	if n, _ := st.CountImages(ctx, p.ID); n != 1 {
		t.Errorf("image rows = %d, want 1", n)
	}
}

func TestUploadAltFallsBackToStoredTitle(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example/speedy.jpg"}
	svc, _ := newService(t, WithUploader(up))
	ctx := context.Background()

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Speedmaster")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.UpdateWithUpload(ctx, p.ID, ProductInput{Status: strp("sold")},
		&Upload{File: bytes.NewReader([]byte("jpeg")), Filename: "speedy.jpg"})
	if err != nil {
		t.Fatalf("UpdateWithUpload: %v", err)
	}
	if len(got.Images) != 1 || got.Images[0].Alt == nil || *got.Images[0].Alt != "Speedmaster image" {
		t.Errorf("images = %+v, want alt from the stored title", got.Images)
	}
}

func TestUploadFailureKeepsImages(t *testing.T) {
	up := &fakeUploader{err: errors.New("cloudinary: 500")}
	svc, st := newService(t, WithUploader(up))
	ctx := context.Background()

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Speedmaster"), ImageURL: strp("https://cdn.example/1.jpg")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.ReplaceImage(ctx, p.ID, Upload{File: bytes.NewReader(nil), Filename: "x.jpg"})
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
	if n, _ := st.CountImages(ctx, p.ID); n != 1 {
		t.Errorf("image rows = %d, want the original 1", n)
	}
}

func TestUpdateWithUploadMissingProduct(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example/x.jpg"}
	svc, _ := newService(t, WithUploader(up))

	_, err := svc.UpdateWithUpload(context.Background(), "missing", ProductInput{},
		&Upload{File: bytes.NewReader(nil), Filename: "x.jpg"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if up.calls != 0 {
		t.Error("uploaded an image for a product that does not exist")
	}
}

func TestUploadWithoutUploader(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Tank")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.ReplaceImage(ctx, p.ID, Upload{File: bytes.NewReader(nil), Filename: "x.jpg"})
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
}

func TestDelete(t *testing.T) {
	ev := &fakeEvents{}
	svc, _ := newService(t, WithEvents(ev))
	ctx := context.Background()

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Tank")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
	if len(ev.events) != 2 || ev.events[1].Action != "delete" {
		t.Errorf("events = %+v", ev.events)
	}
}

func TestListUsesCache(t *testing.T) {
	cache := &fakeCache{}
	svc, _ := newService(t, WithCache(cache))
	ctx := context.Background()

	if _, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Tank")}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidated %d times, want 1", cache.invalidated)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || cache.sets != 1 {
		t.Fatalf("miss path: %d products, %d cache writes", len(list), cache.sets)
	}

	cache.hit = true
	cache.products = []catalog.Product{{ID: "cached"}, {ID: "cached-2"}}
	list, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "cached" {
		t.Errorf("hit path did not use the cache: %+v", list)
	}
}

func TestListDoesNotCacheListingLoadedBeforeMutation(t *testing.T) {
	cache := &fakeCache{}
	svc, _ := newService(t, WithCache(cache))
	ctx := context.Background()

	// A create commits after List has loaded its rows but before it
	// writes them to the cache.
	cache.beforeSet = func() {
		if _, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Reverso")}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("first List = %d products, want the 0 loaded before the create", len(list))
	}
	if cache.skipped != 1 || cache.sets != 0 {
		t.Errorf("cache writes = %d, skipped = %d; want the stale listing skipped", cache.sets, cache.skipped)
	}

	list, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].TitleEn != "Reverso" {
		t.Errorf("List after committed create = %+v, want the new product", list)
	}
	if cache.sets != 1 {
		t.Errorf("fresh listing not cached: %d writes", cache.sets)
	}
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice(" 1234.50 ")
	if err != nil {
		t.Fatalf("ParsePrice: %v", err)
	}
	if !p.Valid || !p.Decimal.Equal(decimal.RequireFromString("1234.5")) {
		t.Errorf("ParsePrice = %v", p.Decimal)
	}
	if p, err := ParsePrice("1234.500"); err != nil || !p.Decimal.Equal(decimal.RequireFromString("1234.5")) {
		t.Errorf("trailing zeros: %v, %v", p.Decimal, err)
	}
	if p, err := ParsePrice("9999999999.99"); err != nil || !p.Valid {
		t.Errorf("largest price rejected: %v", err)
	}
	p, err = ParsePrice("")
	if err != nil || p.Valid {
		t.Errorf("empty price = %v, %v; want NULL", p, err)
	}

	for _, bad := range []string{"1234.567", "0.001", "1e10", "1e12", "-1", "abc"} {
		if _, err := ParsePrice(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("ParsePrice(%q) err = %v, want ErrValidation", bad, err)
		}
	}
}

func TestCreateKeepsExactPrice(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Tank"), Price: strp("1234.567")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create with 3 decimals: err = %v, want ErrValidation", err)
	}

	p, err := svc.Create(ctx, 0, ProductInput{TitleEn: strp("Tank"), Price: strp("1234.56")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Price.Valid || got.Price.Decimal.String() != "1234.56" {
		t.Errorf("stored price = %v, want 1234.56", got.Price.Decimal)
	}
}
