package render_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-formdesigner/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizer_UsesKeysAndFallbacks(t *testing.T) {
	l := render.Localizer{Translator: stubTranslator{"fields.name": "Nombre"}}

	if got := l.Text("es", "fields.name", "Name"); got != "Nombre" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := l.Text("es", "fields.email", "Email"); got != "Email" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := l.Text("es", "fields.bio", ""); got != "fields.bio" {
		t.Fatalf("expected key when no fallback, got %q", got)
	}
	if got := l.Text("es", "", "At most %d", 5); got != "At most 5" {
		t.Fatalf("expected formatted fallback without key, got %q", got)
	}
}

func TestLocalizer_MissingHandler(t *testing.T) {
	var gotErr error
	l := render.Localizer{OnMissing: func(locale, key, fallback string, err error) string {
		gotErr = err
		return "[" + locale + ":" + key + "]"
	}}

	if got := l.Text("fr", "k", "fallback"); got != "[fr:k]" {
		t.Fatalf("unexpected result %q", got)
	}
	if !errors.Is(gotErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestRequestLocale(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"es-MX,es;q=0.9,en;q=0.8": "es-MX",
		"en;q=0.5, fr-CA;q=0.9":   "fr-CA",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		if got := render.RequestLocale(req); got != want {
			t.Fatalf("RequestLocale(%q) = %q, want %q", header, got, want)
		}
	}
	if render.RequestLocale(nil) != "" {
		t.Fatalf("expected empty locale for nil request")
	}
}

type requestLocale string

func (l requestLocale) Locale() string { return string(l) }

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(stubTranslator{"greeting": "Hola"}, render.TemplateI18nConfig{})

	translate := funcs["translate"].(func(any, string, string, ...any) string)
	if got := translate(requestLocale("es"), "greeting", "Hello"); got != "Hola" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := translate("es", "missing", "%d left", 3); got != "3 left" {
		t.Fatalf("expected formatted fallback, got %q", got)
	}
	if got := translate("es", "missing", ""); got != "missing" {
		t.Fatalf("expected key without fallback, got %q", got)
	}

	current := funcs["current_locale"].(func(any) string)
	if got := current(nil); got != render.DefaultLocale {
		t.Fatalf("expected default locale for nil source, got %q", got)
	}
	if got := current(requestLocale("pt-BR")); got != "pt-BR" {
		t.Fatalf("expected locale from source, got %q", got)
	}
	if got := current(" de "); got != "de" {
		t.Fatalf("expected trimmed locale string, got %q", got)
	}
}

func TestTemplateI18nFuncs_DefaultLocale(t *testing.T) {
	funcs := render.TemplateI18nFuncs(nil, render.TemplateI18nConfig{DefaultLocale: "fr"})

	current := funcs["current_locale"].(func(any) string)
	if got := current(""); got != "fr" {
		t.Fatalf("expected configured default, got %q", got)
	}
}
