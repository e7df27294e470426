package cms_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/cms"
)

type textInstance struct {
	Body string
}

func (textInstance) PluginName() string { return "Text" }

func buildText(plugin string, options map[string]string) (cms.Instance, error) {
	if plugin != "Text" {
		return nil, fmt.Errorf("unknown plugin %q", plugin)
	}
	return textInstance{Body: options["body"]}, nil
}

func TestPageStore_AddGetList(t *testing.T) {
	store, err := cms.NewPageStore(&cms.Page{Slug: "/about/"}, &cms.Page{Slug: "home"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	page, err := store.Get("about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.Slug != "about" {
		t.Fatalf("expected normalised slug, got %q", page.Slug)
	}

	var slugs []string
	for _, p := range store.List() {
		slugs = append(slugs, p.Slug)
	}
	if diff := cmp.Diff([]string{"about", "home"}, slugs); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if err := store.Add(&cms.Page{Slug: "about"}); err == nil {
		t.Fatalf("expected duplicate slug error")
	}
	if err := store.Add(&cms.Page{Slug: "/"}); err == nil {
		t.Fatalf("expected empty slug error")
	}
	if _, err := store.Get("missing"); !errors.Is(err, cms.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestLoadPages(t *testing.T) {
	doc := `
pages:
  - slug: about
    title: About
    placeholders:
      main:
        - plugin: Text
          options: { body: first }
        - plugin: Text
          options: { body: second }
      aside:
        - plugin: Text
`
	store, err := cms.LoadPages(strings.NewReader(doc), buildText)
	if err != nil {
		t.Fatalf("load pages: %v", err)
	}
	page, err := store.Get("about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.Title != "About" {
		t.Fatalf("unexpected title %q", page.Title)
	}

	main := page.Placeholder("main")
	want := []cms.Instance{textInstance{Body: "first"}, textInstance{Body: "second"}}
	if diff := cmp.Diff(want, main.Instances); diff != "" {
		t.Fatalf("instances mismatch (-want +got):\n%s", diff)
	}
	if page.Placeholder("aside") == nil || page.Placeholder("missing") != nil {
		t.Fatalf("unexpected placeholder lookup result")
	}
}

func TestLoadPages_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown plugin": "pages:\n  - slug: a\n    placeholders:\n      main:\n        - plugin: Video\n",
		"unknown field":  "pages:\n  - slug: a\n    layout: wide\n",
		"duplicate slug": "pages:\n  - slug: a\n  - slug: /a/\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := cms.LoadPages(strings.NewReader(doc), buildText); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := cms.LoadPages(strings.NewReader(""), nil); err == nil {
		t.Fatalf("expected error without builder")
	}
}
