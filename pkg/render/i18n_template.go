package render

import "strings"

// DefaultLocale is reported by current_locale when the request did not
// negotiate one.
const DefaultLocale = "en"

// LocaleSource is a template value that knows the locale of the request
// being rendered, such as the CMS render context.
type LocaleSource interface {
	Locale() string
}

// TemplateI18nConfig configures the template translation globals.
type TemplateI18nConfig struct {
	DefaultLocale string
	OnMissing     MissingTranslationHandler
}

// TemplateI18nFuncs returns the translate and current_locale template
// globals:
//
//	<html lang="{{ current_locale(locale) }}">
//	{{ translate(render_context, "formdesigner.form.empty_choice", "---------") }}
//
// The first argument is a locale string or a LocaleSource. translate falls
// back to its third argument, formatted with any remaining ones.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localizer := Localizer{Translator: t, OnMissing: cfg.OnMissing}
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}

	return map[string]any{
		"translate": func(src any, key, fallback string, args ...any) string {
			return localizer.Text(localeOf(src), key, fallback, args...)
		},
		"current_locale": func(src any) string {
			if locale := localeOf(src); locale != "" {
				return locale
			}
			return defaultLocale
		},
	}
}

func localeOf(src any) string {
	switch v := src.(type) {
	case string:
		return strings.TrimSpace(v)
	case LocaleSource:
		return strings.TrimSpace(v.Locale())
	default:
		return ""
	}
}
