package access

import "watch-storefront/internal/domain/users"

// EditorModeFor decides how much of the edit UI the storefront shows.
func EditorModeFor(role string) EditorMode {
	switch role {
	case users.RoleAdmin:
		return EditorFull
	case "":
		return EditorNone
	default:
		return EditorBasic
	}
}
