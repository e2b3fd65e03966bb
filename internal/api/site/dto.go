package siteapi

import (
	"strings"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/i18n"
)

type alternateLink struct {
	Locale i18n.Locale
	Href   string
}

type archiveItem struct {
	Slug        string
	Title       string
	Description string
	StatusClass string
	StatusLabel string
	Price       string
	ImageURL    string
	ImageAlt    string
	SoldOn      string
}

type archivePage struct {
	Locale      i18n.Locale
	Title       string
	Description string
	EmptyText   string
	Alternates  []alternateLink
	Items       []archiveItem
}

func toArchiveItem(l i18n.Locale, p catalog.Product) archiveItem {
	item := archiveItem{
		Slug:        p.Slug(),
		Title:       p.Title(string(l)),
		Description: p.Description(string(l)),
		StatusClass: strings.ToLower(string(p.Status)),
		StatusLabel: i18n.StatusLabel(l, p.Status),
		Price:       i18n.FormatPrice(l, p.Price),
	}
	if img := p.MainImage(); img != nil {
		item.ImageURL = img.URL
		item.ImageAlt = item.Title
		if img.Alt != nil && *img.Alt != "" {
			item.ImageAlt = *img.Alt
		}
	}
	if p.Status == catalog.StatusSold {
		item.SoldOn = l.T(i18n.MsgSoldOn, i18n.FormatDate(l, p.UpdatedAt))
	}
	return item
}
