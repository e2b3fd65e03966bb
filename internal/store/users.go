package store

import (
	"context"
	"fmt"
	"strings"

	"watch-storefront/internal/domain/users"

	"gorm.io/gorm"
)

func (s *Store) UserByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// ListUsers returns every user with the products they own.
func (s *Store) ListUsers(ctx context.Context) ([]users.User, error) {
	var out []users.User
	if err := s.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// UpsertUser creates the user or, when the email exists, updates name, role
// and password hash.
func (s *Store) UpsertUser(ctx context.Context, u *users.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing users.User
		err := tx.Where("email = ?", u.Email).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(u).Error
		}
		if err != nil {
			return err
		}

		u.ID = existing.ID
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":          u.Name,
			"role":          u.Role,
			"password_hash": u.PasswordHash,
		}).Error
	})
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID uint, hash string) error {
	res := s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
