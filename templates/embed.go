package templates

import (
	"embed"
	"io/fs"
)

//go:embed formdesigner/*.tpl cms/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// FormTemplate is the built-in template for rendering a form definition.
	FormTemplate = "formdesigner/form"
	// PageTemplate is the built-in page layout with a single "main" slot.
	PageTemplate = "cms/page"

	StylesheetName = "formdesigner.css"
)

// FS exposes the embedded template bundle so hosts can serve the built-in
// layouts or layer their own directory on top.
func FS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet bundle so callers can serve it
// over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
