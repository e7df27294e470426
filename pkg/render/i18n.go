package render

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale. args are positional values
// the message may format.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when key has no
// translation. fallback is the built-in text, already formatted with args.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Localizer translates message keys with a fallback text.
type Localizer struct {
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Text returns the translation of key for locale. fallback is formatted with
// args (fmt verbs) and used when the translator is absent or misses.
func (l Localizer) Text(locale, key, fallback string, args ...any) string {
	if len(args) > 0 && fallback != "" {
		fallback = fmt.Sprintf(fallback, args...)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if l.Translator == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}

	result, err := l.Translator.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// RequestLocale picks the preferred locale from the Accept-Language header,
// or "" when the header is missing or unparsable.
func RequestLocale(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
