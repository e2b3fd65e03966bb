package store

import (
	"context"
	"fmt"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"

	"gorm.io/gorm"
)

type ImageMode int

const (
	ImageKeep    ImageMode = iota
	ImageAppend            // add one image next to the existing ones
	ImageReplace           // drop every existing image, then insert one
)

type ImageChange struct {
	Mode  ImageMode
	Image media.Image
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := productsQuery(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return getProduct(s.db.WithContext(ctx), id)
}

func getProduct(db *gorm.DB, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := productsQuery(db).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// CreateProduct inserts p together with any images it carries.
func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct applies column updates and an optional image change in one
// transaction and returns the product as committed.
func (s *Store) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}, change ImageChange) (*catalog.Product, error) {
	var out *catalog.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p catalog.Product
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		if len(fields) > 0 {
			if err := tx.Model(&p).Updates(fields).Error; err != nil {
				return err
			}
		}

		switch change.Mode {
		case ImageAppend:
			if err := addImage(tx, p.ID, change.Image); err != nil {
				return err
			}
		case ImageReplace:
			if err := replaceImages(tx, p.ID, change.Image); err != nil {
				return err
			}
		}

		updated, err := getProduct(tx, p.ID)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return out, nil
}

// DeleteProduct removes the product and its images. A missing product is
// ErrNotFound.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&media.Image{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&catalog.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *Store) CountProductsByStatus(ctx context.Context) (map[catalog.Status]int64, error) {
	var rows []struct {
		Status catalog.Status
		Count  int64
	}
	if err := s.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	out := make(map[catalog.Status]int64, len(catalog.Statuses))
	for _, st := range catalog.Statuses {
		out[st] = 0
	}
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func (s *Store) CountImages(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := productImagesQuery(s.db.WithContext(ctx), productID).Count(&n).Error
	return n, err
}

func addImage(tx *gorm.DB, productID string, img media.Image) error {
	img.ID = ""
	img.ProductID = productID
	return tx.Create(&img).Error
}

func replaceImages(tx *gorm.DB, productID string, img media.Image) error {
	if err := tx.Where("product_id = ?", productID).Delete(&media.Image{}).Error; err != nil {
		return err
	}
	return addImage(tx, productID, img)
}
