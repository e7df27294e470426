// Package formdesigner wires designer form definitions, the placeholder
// plugin and the page host into a ready-to-serve application.
package formdesigner

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formdesigner/pkg/cms"
	"github.com/goliatone/go-formdesigner/pkg/designer"
	"github.com/goliatone/go-formdesigner/pkg/designer/formlog"
	"github.com/goliatone/go-formdesigner/pkg/formplugin"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formdesigner/pkg/settings"
	"github.com/goliatone/go-formdesigner/templates"
)

// StaticPath is where the embedded stylesheet is served.
const StaticPath = "/static/"

// Option configures New.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	store      formlog.Store
	hidden     designer.HiddenFieldsFunc
	translator render.Translator
	onMissing  render.MissingTranslationHandler
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStore replaces the sqlite submission log opened from DatabaseDSN.
func WithStore(store formlog.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHiddenFields adds per-request hidden inputs (CSRF tokens) to every form.
func WithHiddenFields(fn designer.HiddenFieldsFunc) Option {
	return func(o *options) {
		o.hidden = fn
	}
}

// WithTranslator localises form text and exposes translate/current_locale
// helpers to templates.
func WithTranslator(t render.Translator, onMissing render.MissingTranslationHandler) Option {
	return func(o *options) {
		o.translator = t
		o.onMissing = onMissing
	}
}

// App is a wired form designer site.
type App struct {
	Settings    settings.Settings
	Definitions *designer.Definitions
	Site        *cms.Site
	Store       formlog.Store

	logger  *zap.Logger
	closers []io.Closer
}

// New loads definitions and pages named by cfg and assembles the site.
func New(cfg settings.Settings, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}

	defs, err := LoadDefinitionsFile(cfg.DefinitionsPath)
	if err != nil {
		return nil, err
	}
	pages, err := loadPagesFile(cfg.PagesPath, defs)
	if err != nil {
		return nil, err
	}

	app := &App{
		Settings:    cfg,
		Definitions: defs,
		Store:       o.store,
		logger:      o.logger,
	}
	if app.Store == nil {
		sqlStore, err := formlog.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		app.Store = sqlStore
		app.closers = append(app.closers, sqlStore)
	}

	globals := render.TemplateI18nFuncs(o.translator, render.TemplateI18nConfig{OnMissing: o.onMissing})
	globals["static_url"] = StaticPath
	engineOpts := []gotemplate.Option{
		gotemplate.WithName("formdesigner"),
		gotemplate.WithFS(templates.FS()),
		gotemplate.WithGlobalData(globals),
	}
	if dir := strings.TrimSpace(cfg.TemplatesDir); dir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("formdesigner: %w", err)
	}

	processor := designer.NewProcessor(
		designer.WithStore(app.Store),
		designer.WithLogger(o.logger.Named("designer")),
		designer.WithHiddenFields(o.hidden),
		designer.WithTranslator(o.translator, o.onMissing),
	)
	pool := cms.NewPool()
	if _, err := formplugin.Register(pool, processor,
		formplugin.WithDefaultTemplate(cfg.DefaultFormTemplate),
		formplugin.WithLogger(o.logger.Named("formplugin")),
	); err != nil {
		app.Close()
		return nil, err
	}

	site, err := cms.NewSite(
		cms.WithEngine(engine),
		cms.WithPool(pool),
		cms.WithPages(pages),
		cms.WithLogger(o.logger.Named("cms")),
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Site = site

	o.logger.Info("form designer ready",
		zap.Int("forms", defs.Len()),
		zap.Int("pages", len(pages.List())),
		zap.String("default_template", cfg.DefaultFormTemplate),
	)
	return app, nil
}

// Handler serves the site at the root and the embedded stylesheet under
// StaticPath.
func (a *App) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	mux.Handle(StaticPath, http.StripPrefix(StaticPath, http.FileServerFS(templates.AssetsFS())))
	if _, err := a.Site.RegisterRoutes(mux, "/"); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases the stores opened by New.
func (a *App) Close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// LoadDefinitionsFile reads form definitions from a YAML file.
func LoadDefinitionsFile(path string) (*designer.Definitions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("formdesigner: open definitions: %w", err)
	}
	defer file.Close()
	return designer.LoadDefinitions(file)
}

func loadPagesFile(path string, defs *designer.Definitions) (*cms.PageStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("formdesigner: open pages: %w", err)
	}
	defer file.Close()
	return cms.LoadPages(file, formplugin.InstanceBuilder(defs))
}
