// Package render holds helpers shared by form templates: hidden field
// handling, the split of validation messages into field and form level, and
// message translation with locale negotiation.
package render
