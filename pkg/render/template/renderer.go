package template

import (
	"io"
)

// TemplateRenderer is the contract the page host and plugins render through.
// Name-based lookups append the engine extension when missing.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// Opaque marks values that must reach templates and tags exactly as given.
// Engines normalise other context values (structs become maps), which would
// strip request handles and other live objects.
type Opaque interface {
	OpaqueTemplateValue()
}
