package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is a CDN-hosted picture of a product. IsMain is a display hint and is
// not unique per product.
type Image struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string  `gorm:"not null" json:"url"`
	Alt       *string `json:"alt,omitempty"`
	IsMain    bool    `gorm:"not null;default:false" json:"isMain"`
	ProductID string  `gorm:"type:uuid;not null;index" json:"productId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
