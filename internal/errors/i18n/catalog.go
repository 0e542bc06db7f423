// Package i18n provides localized user-facing messages for domain error codes.
package i18n

import (
	"bytes"
	"text/template"
)

// Code mirrors the machine-readable error code type as a plain string to
// avoid an import cycle with the errors package.
type Code = string

// Catalog holds translated message templates for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, substituting metadata placeholders.
// Unknown codes fall back to a generic message; template failures fall back
// to the raw template text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.messages[code]
	if !ok {
		return "An unexpected error occurred"
	}

	tmpl, err := template.New(code).Parse(raw)
	if err != nil {
		return raw
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch locale {
	case "en-US", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
