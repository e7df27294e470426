// Package formplugin exposes designer form definitions as cms placeholder
// plugins.
package formplugin

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formdesigner/pkg/cms"
	"github.com/goliatone/go-formdesigner/pkg/designer"
	"github.com/goliatone/go-formdesigner/pkg/forceresponse"
	"github.com/goliatone/go-formdesigner/templates"
)

const (
	// PluginName is the pool key form instances refer to.
	PluginName = "Form"
	// ModuleName groups the plugin in admin listings.
	ModuleName = "Form Designer"
)

// Processor validates a submission against a definition and returns the
// template context, or a redirect for accepted submissions.
type Processor interface {
	ProcessForm(r *http.Request, def *designer.FormDefinition, extra map[string]any) (designer.Result, error)
}

// Instance places one form definition on a page.
type Instance struct {
	Definition *designer.FormDefinition
}

// PluginName implements cms.Instance.
func (*Instance) PluginName() string { return PluginName }

// Option configures the plugin.
type Option func(*Plugin)

// WithDefaultTemplate sets the template used for definitions without their
// own FormTemplateName.
func WithDefaultTemplate(name string) Option {
	return func(p *Plugin) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			p.defaultTemplate = trimmed
		}
	}
}

// WithLogger sets the plugin logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Plugin renders form instances. It holds no per-render state and is safe
// for concurrent use.
type Plugin struct {
	processor       Processor
	defaultTemplate string
	logger          *zap.Logger
}

var (
	_ cms.Plugin    = (*Plugin)(nil)
	_ cms.Previewer = (*Plugin)(nil)
)

// New constructs the plugin around processor.
func New(processor Processor, options ...Option) (*Plugin, error) {
	if processor == nil {
		return nil, fmt.Errorf("formplugin: processor is required")
	}
	p := &Plugin{
		processor:       processor,
		defaultTemplate: templates.FormTemplate,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p, nil
}

// Register builds the plugin and adds it to pool.
func Register(pool *cms.Pool, processor Processor, options ...Option) (*Plugin, error) {
	if pool == nil {
		return nil, fmt.Errorf("formplugin: pool is required")
	}
	p, err := New(processor, options...)
	if err != nil {
		return nil, err
	}
	if err := pool.Register(p); err != nil {
		return nil, fmt.Errorf("formplugin: %w", err)
	}
	return p, nil
}

func (*Plugin) Name() string       { return PluginName }
func (*Plugin) Module() string     { return ModuleName }
func (*Plugin) AdminPreview() bool { return false }

// DefaultTemplate returns the template used when a definition names none.
func (p *Plugin) DefaultTemplate() string { return p.defaultTemplate }

// Render processes the request against the instance's definition. Accepted
// submissions that redirect come back as a forceresponse carrier holding the
// processor's response.
func (p *Plugin) Render(rc *cms.RenderContext, inst cms.Instance, _ *cms.Placeholder) (cms.Content, error) {
	form, ok := inst.(*Instance)
	if !ok || form == nil {
		return cms.Content{}, fmt.Errorf("formplugin: unexpected instance %T", inst)
	}
	def := form.Definition
	if def == nil {
		return cms.Content{}, fmt.Errorf("formplugin: instance has no form definition")
	}

	tmpl := strings.TrimSpace(def.FormTemplateName)
	if tmpl == "" {
		tmpl = p.defaultTemplate
	}

	result, err := p.processor.ProcessForm(rc.Request(), def, rc.Values())
	if err != nil {
		return cms.Content{}, err
	}
	if resp, ok := result.Redirect(); ok {
		p.logger.Debug("form forcing redirect",
			zap.String("form", def.Name),
			zap.String("location", resp.Location()),
		)
		return cms.Content{}, forceresponse.New(resp)
	}
	return cms.Content{Template: tmpl, Context: result.Context}, nil
}

// InstanceBuilder resolves {plugin: Form, options: {form: <name>}} page
// entries against defs. Other plugin names are rejected.
func InstanceBuilder(defs *designer.Definitions) cms.InstanceBuilder {
	return func(plugin string, options map[string]string) (cms.Instance, error) {
		if plugin != PluginName {
			return nil, fmt.Errorf("formplugin: unsupported plugin %q", plugin)
		}
		name := strings.TrimSpace(options["form"])
		if name == "" {
			return nil, fmt.Errorf("formplugin: instance needs a form option")
		}
		def, err := defs.Get(name)
		if err != nil {
			return nil, err
		}
		return &Instance{Definition: def}, nil
	}
}
