package testsupport

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/designer"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/render/template/gotemplate"
)

// MustLoadDefinitions reads a YAML definitions fixture from disk.
func MustLoadDefinitions(t *testing.T, path string) *designer.Definitions {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open definitions: %v", err)
	}
	defer file.Close()

	defs, err := designer.LoadDefinitions(file)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return defs
}

// MustDefinition returns a named definition from a fixture file.
func MustDefinition(t *testing.T, path, name string) *designer.FormDefinition {
	t.Helper()

	def, err := MustLoadDefinitions(t, path).Get(name)
	if err != nil {
		t.Fatalf("definition %q: %v", name, err)
	}
	return def
}

// NewEngine builds a template engine over files with the untranslated
// translate/current_locale globals, failing the test on error.
func NewEngine(t *testing.T, files fs.FS, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	base := []gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithGlobalData(render.TemplateI18nFuncs(nil, render.TemplateI18nConfig{})),
	}
	engine, err := gotemplate.New(append(base, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

// PostForm builds a url-encoded POST request.
func PostForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
