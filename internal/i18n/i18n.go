// Package i18n resolves the visitor's locale and formats storefront text,
// prices and dates for it.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Locale string

const (
	English Locale = "en"
	Italian Locale = "it"

	Default = English
)

var Locales = []Locale{English, Italian}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Italian})

func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case Italian:
		return Italian, true
	default:
		return "", false
	}
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Locales[idx]
}

func (l Locale) Tag() language.Tag {
	if l == Italian {
		return language.Italian
	}
	return language.English
}

func (l Locale) Printer() *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(messages))
}

// T translates an English message key.
func (l Locale) T(key string, args ...interface{}) string {
	return l.Printer().Sprintf(key, args...)
}
