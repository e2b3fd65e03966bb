package catalog

import (
	"time"

	"watch-storefront/internal/domain/media"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a watch listed in the archive. A NULL price means "price on request".
type Product struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	TitleEn       string `gorm:"not null" json:"titleEn"`
	TitleIt       string `gorm:"not null" json:"titleIt"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionIt string `json:"descriptionIt"`

	Price  decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	Status Status              `gorm:"type:varchar(16);not null;default:'AVAILABLE';index" json:"status"`

	Brand     *string `json:"brand,omitempty"`
	Model     *string `json:"model,omitempty"`
	Year      *int    `json:"year,omitempty"`
	Condition *string `json:"condition,omitempty"`

	OwnerID *uint `gorm:"index" json:"ownerId,omitempty"`

	Images []media.Image `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE;" json:"images"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	return nil
}

// Title returns the title for a language code, falling back to English.
func (p Product) Title(lang string) string {
	if lang == "it" && p.TitleIt != "" {
		return p.TitleIt
	}
	return p.TitleEn
}

func (p Product) Description(lang string) string {
	if lang == "it" {
		return p.DescriptionIt
	}
	return p.DescriptionEn
}

// MainImage is the first image flagged main, else the first image, else nil.
func (p Product) MainImage() *media.Image {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
