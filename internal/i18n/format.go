package i18n

import (
	"fmt"
	"time"

	domain "watch-storefront/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a EUR amount without fraction digits, or the localized
// "price on request" text when the price is NULL.
//
//	en: €75,000   it: 75.000 €
func FormatPrice(l Locale, price decimal.NullDecimal) string {
	if !price.Valid {
		return l.T(MsgPriceOnRequest)
	}
	p := l.Printer()
	amount := p.Sprintf("%d", price.Decimal.Round(0).IntPart())
	if l == Italian {
		return amount + " €"
	}
	return "€" + amount
}

// FormatDate renders a long-form date.
//
//	en: December 15, 2023   it: 15 dicembre 2023
func FormatDate(l Locale, t time.Time) string {
	month := l.T(t.Month().String())
	if l == Italian {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

func StatusLabel(l Locale, s domain.Status) string {
	switch s {
	case domain.StatusSold:
		return l.T(MsgSold)
	case domain.StatusReserved:
		return l.T(MsgReserved)
	default:
		return l.T(MsgAvailable)
	}
}
