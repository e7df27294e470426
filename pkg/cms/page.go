package cms

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// HomeSlug is served for the site root.
const HomeSlug = "home"

// ErrPageNotFound is returned by PageStore.Get for unknown slugs.
var ErrPageNotFound = errors.New("cms: page not found")

// Page is a routable document made of placeholders.
type Page struct {
	Slug         string
	Title        string
	Template     string
	Placeholders map[string]*Placeholder
}

// Placeholder returns the slot with the given name, or nil.
func (p *Page) Placeholder(slot string) *Placeholder {
	if p == nil || p.Placeholders == nil {
		return nil
	}
	return p.Placeholders[slot]
}

// AddInstance appends inst to slot, creating the placeholder on first use.
func (p *Page) AddInstance(slot string, inst Instance) {
	if p.Placeholders == nil {
		p.Placeholders = make(map[string]*Placeholder)
	}
	ph, ok := p.Placeholders[slot]
	if !ok {
		ph = &Placeholder{Slot: slot}
		p.Placeholders[slot] = ph
	}
	ph.Instances = append(ph.Instances, inst)
}

// PageStore is an in-memory, concurrency-safe page registry.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewPageStore creates a store holding pages.
func NewPageStore(pages ...*Page) (*PageStore, error) {
	store := &PageStore{pages: make(map[string]*Page)}
	for _, page := range pages {
		if err := store.Add(page); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Add registers page under its slug. Slugs are unique.
func (s *PageStore) Add(page *Page) error {
	if page == nil {
		return fmt.Errorf("cms: page is required")
	}
	slug := normalizeSlug(page.Slug)
	if slug == "" {
		return fmt.Errorf("cms: page slug is required")
	}
	page.Slug = slug

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pages[slug]; exists {
		return fmt.Errorf("cms: page %q already exists", slug)
	}
	s.pages[slug] = page
	return nil
}

// Get returns the page for slug or ErrPageNotFound.
func (s *PageStore) Get(slug string) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[normalizeSlug(slug)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, slug)
	}
	return page, nil
}

// List returns the stored pages ordered by slug.
func (s *PageStore) List() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Page, 0, len(s.pages))
	for _, page := range s.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func normalizeSlug(slug string) string {
	return strings.Trim(strings.TrimSpace(slug), "/")
}

// InstanceBuilder turns a stored plugin reference into an Instance. Hosts
// compose builders from the plugin packages they wire.
type InstanceBuilder func(plugin string, options map[string]string) (Instance, error)

type pagesDocument struct {
	Pages []pageDocument `yaml:"pages"`
}

type pageDocument struct {
	Slug         string                        `yaml:"slug"`
	Title        string                        `yaml:"title"`
	Template     string                        `yaml:"template"`
	Placeholders map[string][]instanceDocument `yaml:"placeholders"`
}

type instanceDocument struct {
	Plugin  string            `yaml:"plugin"`
	Options map[string]string `yaml:"options"`
}

// LoadPages decodes a YAML pages document:
//
//	pages:
//	  - slug: contact
//	    title: Contact
//	    placeholders:
//	      main:
//	        - plugin: Form
//	          options: { form: contact }
func LoadPages(r io.Reader, build InstanceBuilder) (*PageStore, error) {
	if build == nil {
		return nil, fmt.Errorf("cms: instance builder is required")
	}
	var doc pagesDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cms: decode pages: %w", err)
	}

	store, _ := NewPageStore()
	for _, pd := range doc.Pages {
		page := &Page{
			Slug:     pd.Slug,
			Title:    strings.TrimSpace(pd.Title),
			Template: strings.TrimSpace(pd.Template),
		}
		slots := make([]string, 0, len(pd.Placeholders))
		for slot := range pd.Placeholders {
			slots = append(slots, slot)
		}
		sort.Strings(slots)
		for _, slot := range slots {
			for i, ref := range pd.Placeholders[slot] {
				inst, err := build(strings.TrimSpace(ref.Plugin), ref.Options)
				if err != nil {
					return nil, fmt.Errorf("cms: page %q slot %q instance %d: %w", pd.Slug, slot, i, err)
				}
				page.AddInstance(slot, inst)
			}
		}
		if err := store.Add(page); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadPagesFS reads a pages document from fsys.
func LoadPagesFS(fsys fs.FS, name string, build InstanceBuilder) (*PageStore, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cms: open pages %q: %w", name, err)
	}
	defer file.Close()
	return LoadPages(file, build)
}
