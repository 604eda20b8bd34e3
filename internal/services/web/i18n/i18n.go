// Package i18n holds the web message catalog and request locale resolution.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.English}

var matcher = language.NewMatcher(supported)

// Supported returns the languages with a message catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the fallback language.
func Default() language.Tag {
	return language.English
}

// ResolveTag picks the best supported language from Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ForRequest returns the printer and language for r.
func ForRequest(r *http.Request) (*message.Printer, language.Tag) {
	tag := ResolveTag(r)
	return Printer(tag), tag
}
