// Package i18n provides localized user-facing messages for error codes and
// game outcome labels.
package i18n

import (
	"bytes"
	"text/template"

	platformi18n "github.com/louisbranch/seabattle.space/internal/platform/i18n"
)

// Code is a machine-readable message key (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// Outcome label keys, rendered into persisted game history rows.
const (
	LabelVictory Code = "RESULT_VICTORY"
	LabelDefeat  Code = "RESULT_DEFEAT"
)

// Catalog maps message keys to templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var catalogs = map[string]*Catalog{}

func init() {
	register(NewCatalog("en-US", messagesEnUS))
	register(NewCatalog("ru-RU", messagesRuRU))
}

func register(c *Catalog) {
	catalogs[c.locale] = c
}

// NewCatalog creates a catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

// GetCatalog returns the catalog for the given locale, resolving partial or
// weighted locale requests and falling back to en-US.
func GetCatalog(locale string) *Catalog {
	resolved := platformi18n.Resolve(locale)
	if c, ok := catalogs[resolved]; ok {
		return c
	}
	return catalogs[platformi18n.BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the message key itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
