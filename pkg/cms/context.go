package cms

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/render/template"
)

// RenderContextKey is the template variable holding the *RenderContext.
const RenderContextKey = "render_context"

// RenderContext is created once per page render. It carries the request,
// the page being rendered, and values that plugins see as extra template
// context.
type RenderContext struct {
	request *http.Request
	page    *Page
	site    *Site

	mu     sync.RWMutex
	values map[string]any
}

var _ template.Opaque = (*RenderContext)(nil)

// NewRenderContext builds a context detached from any site. Plugins can be
// exercised with it directly; placeholder rendering needs a Site.
func NewRenderContext(r *http.Request, page *Page) *RenderContext {
	return &RenderContext{
		request: r,
		page:    page,
		values:  make(map[string]any),
	}
}

// OpaqueTemplateValue marks the context as a live value for the template
// engine.
func (*RenderContext) OpaqueTemplateValue() {}

// Request returns the request being served. It may be nil for contexts
// built outside a request.
func (rc *RenderContext) Request() *http.Request {
	if rc == nil {
		return nil
	}
	return rc.request
}

// Locale returns the locale negotiated from the request's Accept-Language
// header, or "".
func (rc *RenderContext) Locale() string {
	if rc == nil {
		return ""
	}
	return render.RequestLocale(rc.request)
}

// Page returns the page being rendered.
func (rc *RenderContext) Page() *Page {
	if rc == nil {
		return nil
	}
	return rc.page
}

// Set stores a value exposed to plugins and templates.
func (rc *RenderContext) Set(key string, value any) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.values[key] = value
}

// Get returns a stored value.
func (rc *RenderContext) Get(key string) (any, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	value, ok := rc.values[key]
	return value, ok
}

// Values returns a copy of the stored values.
func (rc *RenderContext) Values() map[string]any {
	if rc == nil {
		return map[string]any{}
	}
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	out := make(map[string]any, len(rc.values))
	for key, value := range rc.values {
		out[key] = value
	}
	return out
}

// renderSlot renders every instance of slot in order. Plugin errors are
// returned unchanged.
func (rc *RenderContext) renderSlot(slot string) (string, error) {
	if rc.site == nil {
		return "", fmt.Errorf("cms: render context is not attached to a site")
	}
	ph := rc.page.Placeholder(slot)
	if ph == nil {
		return "", nil
	}

	var out strings.Builder
	for _, inst := range ph.Instances {
		if inst == nil {
			continue
		}
		plugin, err := rc.site.pool.Get(inst.PluginName())
		if err != nil {
			return "", err
		}
		content, err := plugin.Render(rc, inst, ph)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(content.Template) == "" {
			return "", fmt.Errorf("cms: plugin %q returned no template", plugin.Name())
		}

		data := make(map[string]any, len(content.Context)+1)
		for key, value := range content.Context {
			data[key] = value
		}
		data[RenderContextKey] = rc

		rendered, err := rc.site.engine.RenderTemplate(content.Template, data)
		if err != nil {
			return "", fmt.Errorf("cms: render plugin %q: %w", plugin.Name(), err)
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}
