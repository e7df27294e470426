// Package template defines the template rendering seam shared by the page
// host and plugins. Implementations live in subpackages.
package template
