package template_test

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formdesigner/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formdesigner/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

type opaqueLabelled struct {
	Label string
	ch    chan struct{}
}

func (*opaqueLabelled) OpaqueTemplateValue() {}

func TestGoTemplateEngine_OpaqueValuesSkipNormalisation(t *testing.T) {
	engine := newEngine(t)

	// A channel cannot be JSON encoded, so normalisation would fail here.
	thing := &opaqueLabelled{Label: "kept", ch: make(chan struct{})}
	out, err := engine.RenderTemplate("opaque", map[string]any{
		"thing": thing,
		"plain": struct{ Label string }{Label: "copied"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "kept|copied" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGoTemplateEngine_NonOpaqueUnencodableValueFails(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.RenderTemplate("opaque", map[string]any{
		"thing": struct{ C chan int }{C: make(chan int)},
	})
	if err == nil {
		t.Fatalf("expected conversion error")
	}
}

func TestGoTemplateEngine_RenderDetectsInlineSource(t *testing.T) {
	engine := newEngine(t)
	out, err := engine.Render("{{ greeting|upper }}", map[string]any{"greeting": "hi"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "HI" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGoTemplateEngine_WithFilter(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithFilter("formdesigner_test_shout", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.ToUpper(in.String()) + "!"), nil
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("{{ name|formdesigner_test_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ADA!" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGoTemplateEngine_FilterErrorStaysReachable(t *testing.T) {
	cause := errors.New("filter exploded")
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithFilter("formdesigner_test_explode", func(*pongo2.Value, *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return nil, &pongo2.Error{Sender: "filter:formdesigner_test_explode", OrigError: cause}
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, err = engine.Render("{{ name|formdesigner_test_explode }}", map[string]any{"name": "ada"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected filter error in chain, got %v", err)
	}
	var tplErr *pongo2.Error
	if !errors.As(err, &tplErr) {
		t.Fatalf("expected pongo2 error in chain, got %T", err)
	}
	if !strings.Contains(err.Error(), "filter exploded") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
