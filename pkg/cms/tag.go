package cms

import (
	"sync"

	"github.com/flosch/pongo2/v6"
)

// PlaceholderTag is the template tag that renders a page slot.
const PlaceholderTag = "placeholder"

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterTags installs the placeholder tag into pongo2. Tags are global to
// the process; repeated calls return the first result.
func RegisterTags() error {
	registerOnce.Do(func() {
		registerErr = pongo2.RegisterTag(PlaceholderTag, parsePlaceholderTag)
	})
	return registerErr
}

type placeholderNode struct {
	token *pongo2.Token
	slot  string
}

func (n *placeholderNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	rc, ok := ctx.Public[RenderContextKey].(*RenderContext)
	if !ok || rc == nil {
		return ctx.Error("placeholder used outside a page render", n.token)
	}
	rendered, err := rc.renderSlot(n.slot)
	if err != nil {
		return ctx.OrigError(err, n.token)
	}
	if _, err := writer.WriteString(rendered); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}

func parsePlaceholderTag(_ *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	slot := arguments.MatchType(pongo2.TokenString)
	if slot == nil {
		return nil, arguments.Error("placeholder tag requires a quoted slot name", nil)
	}
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("placeholder tag takes a single slot name", nil)
	}
	return &placeholderNode{token: start, slot: slot.Val}, nil
}
