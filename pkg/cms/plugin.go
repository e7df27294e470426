package cms

// Plugin renders instances of one kind of content into placeholders.
type Plugin interface {
	// Name is the registry key instances refer to.
	Name() string
	// Module groups plugins in admin listings.
	Module() string
	// Render returns the template and context used to render inst. Errors
	// are propagated to the page handler unchanged.
	Render(rc *RenderContext, inst Instance, ph *Placeholder) (Content, error)
}

// Previewer is implemented by plugins that declare whether the admin may
// render a live preview of their instances.
type Previewer interface {
	AdminPreview() bool
}

// Instance is the stored configuration of a plugin on a page.
type Instance interface {
	PluginName() string
}

// Content is what a plugin contributes: a template name and its context.
type Content struct {
	Template string
	Context  map[string]any
}

// Placeholder is a named slot on a page.
type Placeholder struct {
	Slot      string
	Instances []Instance
}
