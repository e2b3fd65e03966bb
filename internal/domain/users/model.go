package users

import (
	"time"

	"watch-storefront/internal/domain/catalog"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an editor account. Accounts are created by the seed command only.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email"`
	Name         string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'USER'"`

	// deleting a user keeps their products
	Products []catalog.Product `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
