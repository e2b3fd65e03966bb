package store

import (
	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"

	"gorm.io/gorm"
)

func productsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&catalog.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func productImagesQuery(db *gorm.DB, productID string) *gorm.DB {
	return db.Model(&media.Image{}).Where("product_id = ?", productID)
}
