package auth

import "watch-storefront/internal/domain/users"

type SessionResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AccessDTO struct {
	EditorMode   string   `json:"editor_mode"` // none|basic|full
	Capabilities []string `json:"capabilities"`
}

func toUserDTO(u users.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
