package cms

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formdesigner/pkg/forceresponse"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/render/template"
)

// DefaultPageTemplate is used for pages that do not name a template.
const DefaultPageTemplate = "cms/page"

// Option configures a Site.
type Option func(*Site)

// WithEngine sets the renderer used for page and plugin templates.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(s *Site) {
		s.engine = engine
	}
}

// WithPool sets the plugin pool.
func WithPool(pool *Pool) Option {
	return func(s *Site) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithPages sets the page store.
func WithPages(pages *PageStore) Option {
	return func(s *Site) {
		if pages != nil {
			s.pages = pages
		}
	}
}

// WithLogger sets the site logger. It is also handed to the response
// middleware.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultPageTemplate overrides DefaultPageTemplate.
func WithDefaultPageTemplate(name string) Option {
	return func(s *Site) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.pageTemplate = trimmed
		}
	}
}

// WithErrorHandler replaces the error page writer used by Handler.
func WithErrorHandler(handler forceresponse.ErrorHandler) Option {
	return func(s *Site) {
		s.errorHandler = handler
	}
}

// Site serves pages from a PageStore, rendering placeholders through the
// plugins in a Pool.
type Site struct {
	engine       template.TemplateRenderer
	pool         *Pool
	pages        *PageStore
	logger       *zap.Logger
	pageTemplate string
	errorHandler forceresponse.ErrorHandler
}

// NewSite constructs a Site. An engine is required; pool and pages default to
// empty stores.
func NewSite(options ...Option) (*Site, error) {
	pages, _ := NewPageStore()
	site := &Site{
		pool:         NewPool(),
		pages:        pages,
		logger:       zap.NewNop(),
		pageTemplate: DefaultPageTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(site)
	}
	if site.engine == nil {
		return nil, fmt.Errorf("cms: template engine is required")
	}
	if err := RegisterTags(); err != nil {
		return nil, fmt.Errorf("cms: register template tags: %w", err)
	}
	return site, nil
}

// Pool returns the plugin pool.
func (s *Site) Pool() *Pool { return s.pool }

// Pages returns the page store.
func (s *Site) Pages() *PageStore { return s.pages }

// ServePage renders the page addressed by the request path. Output is
// buffered and written only once the whole page rendered, so a returned
// error always leaves w untouched.
func (s *Site) ServePage(w http.ResponseWriter, r *http.Request) error {
	slug := normalizeSlug(r.URL.Path)
	if slug == "" {
		slug = HomeSlug
	}
	page, err := s.pages.Get(slug)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return StatusError{Code: http.StatusNotFound, Err: err}
		}
		return err
	}

	rc := NewRenderContext(r, page)
	rc.site = s

	name := page.Template
	if name == "" {
		name = s.pageTemplate
	}
	body, err := s.engine.RenderTemplate(name, map[string]any{
		"page": map[string]any{
			"slug":  page.Slug,
			"title": page.Title,
		},
		"locale":         render.RequestLocale(r),
		RenderContextKey: rc,
	})
	if err != nil {
		return fmt.Errorf("cms: render page %q: %w", page.Slug, err)
	}

	s.logger.Debug("page rendered",
		zap.String("slug", page.Slug),
		zap.String("template", name),
		zap.Int("bytes", len(body)),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(body))
	if err != nil {
		s.logger.Warn("write page", zap.String("slug", page.Slug), zap.Error(err))
	}
	return nil
}

// Handler wraps ServePage with the forced-response middleware.
func (s *Site) Handler() http.Handler {
	options := []forceresponse.Option{forceresponse.WithLogger(s.logger)}
	if s.errorHandler != nil {
		options = append(options, forceresponse.WithErrorHandler(s.errorHandler))
	}
	return forceresponse.Middleware(s.ServePage, options...)
}
