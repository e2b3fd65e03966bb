package catalog

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug joins the non-empty parts into a URL-safe slug.
// Example: ("Patek Philippe", "Nautilus") -> "patek-philippe-nautilus"
func MakeSlug(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	base := strings.ToLower(strings.Join(kept, " "))
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "_", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "watch"
	}
	return base
}

// Slug is the anchor used by the archive page for a product.
func (p Product) Slug() string {
	short := p.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return MakeSlug(deref(p.Brand), deref(p.Model), short)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
