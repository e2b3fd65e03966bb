package content

import "time"

// Content is an editable piece of page copy addressed by ContentKey.
type Content struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ContentKey   string `gorm:"not null;uniqueIndex" json:"contentKey"`
	Type         string `gorm:"not null;default:'text'" json:"type"`
	Page         string `gorm:"index" json:"page"`
	Section      string `json:"section"`
	DefaultValue string `json:"defaultValue"`
	CurrentValue string `json:"currentValue"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// History is append-only: one row per overwritten value.
type History struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ContentKey string `gorm:"not null;index" json:"contentKey"`
	Type       string `json:"type"`
	Page       string `json:"page"`
	Section    string `json:"section"`
	Value      string `json:"value"`
	UserID     string `gorm:"index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (History) TableName() string {
	return "content_histories"
}
