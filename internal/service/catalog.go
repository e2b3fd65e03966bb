// Package service implements the catalog operations behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"
	"watch-storefront/internal/store"
)

var (
	ErrNotFound = store.ErrNotFound
	ErrUpload   = errors.New("image upload failed")
)

// Paths whose rendered listings go stale after a catalog mutation.
const (
	ArchivePath = "/[locale]/archive"
	AdminPath   = "/[locale]/admin"
)

// ProductCache holds the product listing between mutations. Invalidate
// advances the generation; SetProducts stores only when the generation is
// still the one read before the listing was loaded.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]catalog.Product, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetProducts(ctx context.Context, gen int64, products []catalog.Product) (bool, error)
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

type MutationRecorder interface {
	RecordMutation(action string)
}

type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// Upload is a binary image received from a client.
type Upload struct {
	File     io.Reader
	Filename string
}

// RevalidateEvent is published after every successful mutation.
type RevalidateEvent struct {
	Action    string    `json:"action"`
	ProductID string    `json:"productId"`
	Paths     []string  `json:"paths"`
	At        time.Time `json:"at"`
}

type CatalogService struct {
	store    *store.Store
	cache    ProductCache
	events   EventPublisher
	uploader Uploader
	metrics  MutationRecorder
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*CatalogService)

func WithCache(c ProductCache) Option {
	return func(s *CatalogService) { s.cache = c }
}

func WithEvents(p EventPublisher) Option {
	return func(s *CatalogService) { s.events = p }
}

func WithUploader(u Uploader) Option {
	return func(s *CatalogService) { s.uploader = u }
}

func WithMetrics(m MutationRecorder) Option {
	return func(s *CatalogService) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *CatalogService) { s.log = l }
}

func NewCatalogService(st *store.Store, opts ...Option) *CatalogService {
	s := &CatalogService{
		store: st,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns every product with its images, newest first.
func (s *CatalogService) List(ctx context.Context) ([]catalog.Product, error) {
	if s.cache == nil {
		return s.store.ListProducts(ctx)
	}

	products, ok, err := s.cache.GetProducts(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "product cache read failed", "error", err)
	} else if ok {
		return products, nil
	}

	// The generation is read before the query so a mutation committed in
	// between keeps this listing out of the cache.
	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.log.WarnContext(ctx, "product cache generation read failed", "error", genErr)
	}

	products, err = s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		stored, err := s.cache.SetProducts(ctx, gen, products)
		if err != nil {
			s.log.WarnContext(ctx, "product cache write failed", "error", err)
		} else if !stored {
			s.log.DebugContext(ctx, "product cache write skipped, catalog changed during load")
		}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*catalog.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Create persists a new product owned by ownerID. An image URL, when given,
// becomes the product's main image.
func (s *CatalogService) Create(ctx context.Context, ownerID uint, in ProductInput) (*catalog.Product, error) {
	f, err := in.parse()
	if err != nil {
		return nil, err
	}
	p, err := f.newProduct()
	if err != nil {
		return nil, err
	}
	if ownerID != 0 {
		p.OwnerID = &ownerID
	}
	if f.imageURL != "" {
		p.Images = []media.Image{{URL: f.imageURL, IsMain: true}}
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.revalidate(ctx, "create", p.ID)
	return p, nil
}

// Update applies a partial update. A new image URL is appended to the
// existing images.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*catalog.Product, error) {
	f, err := in.parse()
	if err != nil {
		return nil, err
	}

	change := store.ImageChange{Mode: store.ImageKeep}
	if f.imageURL != "" {
		change = store.ImageChange{
			Mode:  store.ImageAppend,
			Image: media.Image{URL: f.imageURL, IsMain: true},
		}
	}

	p, err := s.store.UpdateProduct(ctx, id, f.columns(), change)
	if err != nil {
		return nil, err
	}

	s.revalidate(ctx, "update", p.ID)
	return p, nil
}

// UpdateWithUpload applies a partial update and, when an upload is given,
// replaces all of the product's images with the uploaded one. The field
// update and the image swap commit together.
func (s *CatalogService) UpdateWithUpload(ctx context.Context, id string, in ProductInput, up *Upload) (*catalog.Product, error) {
	f, err := in.parse()
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	change := store.ImageChange{Mode: store.ImageKeep}
	if up != nil {
		url, err := s.upload(ctx, up)
		if err != nil {
			return nil, err
		}

		title := current.TitleEn
		if f.titleEn.set {
			title = f.titleEn.v
		}
		alt := "Product image"
		if title != "" {
			alt = title + " image"
		}
		change = store.ImageChange{
			Mode:  store.ImageReplace,
			Image: media.Image{URL: url, Alt: &alt, IsMain: true},
		}
		s.log.InfoContext(ctx, "image uploaded", "product_id", id, "url", url)
	}

	p, err := s.store.UpdateProduct(ctx, id, f.columns(), change)
	if err != nil {
		return nil, err
	}

	s.revalidate(ctx, "update", p.ID)
	return p, nil
}

// AddImage appends an image by URL.
func (s *CatalogService) AddImage(ctx context.Context, productID, imageURL string) (*catalog.Product, error) {
	return s.Update(ctx, productID, ProductInput{ImageURL: &imageURL})
}

// ReplaceImage uploads the file and makes it the product's only image.
func (s *CatalogService) ReplaceImage(ctx context.Context, productID string, up Upload) (*catalog.Product, error) {
	return s.UpdateWithUpload(ctx, productID, ProductInput{}, &up)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.revalidate(ctx, "delete", id)
	return nil
}

func (s *CatalogService) CountByStatus(ctx context.Context) (map[catalog.Status]int64, error) {
	return s.store.CountProductsByStatus(ctx)
}

func (s *CatalogService) upload(ctx context.Context, up *Upload) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("%w: media uploader is not configured", ErrUpload)
	}
	url, err := s.uploader.Upload(ctx, up.File, up.Filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return url, nil
}

// revalidate drops the cached listing and announces the stale pages.
// Failures are logged only; the mutation has already committed.
func (s *CatalogService) revalidate(ctx context.Context, action, productID string) {
	if s.metrics != nil {
		s.metrics.RecordMutation(action)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WarnContext(ctx, "product cache invalidation failed", "error", err)
		}
	}
	if s.events != nil {
		ev := RevalidateEvent{
			Action:    action,
			ProductID: productID,
			Paths:     []string{ArchivePath, AdminPath},
			At:        s.now().UTC(),
		}
		if err := s.events.Publish(ctx, productID, ev); err != nil {
			s.log.WarnContext(ctx, "revalidate event not published", "product_id", productID, "error", err)
		}
	}
}
