package store

import (
	"context"
	"fmt"

	"watch-storefront/internal/domain/content"

	"gorm.io/gorm"
)

type ContentInput struct {
	ContentKey   string
	Type         string
	Page         string
	Section      string
	Value        string
	DefaultValue string
}

func (s *Store) Content(ctx context.Context, key string) (*content.Content, error) {
	var c content.Content
	if err := s.db.WithContext(ctx).Where("content_key = ?", key).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// SaveContent creates the content key or, when it exists, records the
// overwritten value in the history before updating it.
func (s *Store) SaveContent(ctx context.Context, in ContentInput, editor string) (*content.Content, error) {
	var out content.Content

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("content_key = ?", in.ContentKey).First(&out).Error
		if err == gorm.ErrRecordNotFound {
			def := in.DefaultValue
			if def == "" {
				def = in.Value
			}
			typ := in.Type
			if typ == "" {
				typ = "text"
			}
			out = content.Content{
				ContentKey:   in.ContentKey,
				Type:         typ,
				Page:         in.Page,
				Section:      in.Section,
				DefaultValue: def,
				CurrentValue: in.Value,
			}
			return tx.Create(&out).Error
		}
		if err != nil {
			return err
		}

		h := content.History{
			ContentKey: out.ContentKey,
			Type:       out.Type,
			Page:       out.Page,
			Section:    out.Section,
			Value:      out.CurrentValue,
			UserID:     editor,
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}

		out.CurrentValue = in.Value
		return tx.Model(&out).Update("current_value", in.Value).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}
	return &out, nil
}

func (s *Store) ContentHistory(ctx context.Context, key string) ([]content.History, error) {
	var out []content.History
	if err := s.db.WithContext(ctx).
		Where("content_key = ?", key).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("content history: %w", err)
	}
	return out, nil
}
