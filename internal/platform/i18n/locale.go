// Package i18n resolves requested locales against the locales this service ships.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// supported lists the locales with full message catalogs. The first entry is
// the fallback for unmatched requests.
var supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("ru-RU"),
}

var matcher = language.NewMatcher(supported)

// Resolve maps a requested locale (possibly a bare language or a weighted
// Accept-Language list) to the closest supported catalog locale.
func Resolve(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return BaseLocale
	}
	_, index := language.MatchStrings(matcher, requested)
	return supported[index].String()
}

// Supported returns the locales this service ships catalogs for.
func Supported() []string {
	out := make([]string, len(supported))
	for i, tag := range supported {
		out[i] = tag.String()
	}
	return out
}
