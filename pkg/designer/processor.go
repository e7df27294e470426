package designer

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formdesigner/pkg/designer/formlog"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/response"
)

// SubmissionField is the hidden input that tells which definition a POST
// belongs to, so several forms can share a page.
const SubmissionField = "form_definition"

const defaultLoggedEntries = 20

// Result is the outcome of ProcessForm: template context, and for a valid
// submission with SuccessRedirect set, the redirect to send instead.
type Result struct {
	Context  map[string]any
	Response *response.Response
}

// Redirect returns the redirect response, if the result carries one.
func (r Result) Redirect() (*response.Response, bool) {
	if r.Response != nil && r.Response.IsRedirect() {
		return r.Response, true
	}
	return nil, false
}

// HiddenFieldsFunc supplies extra hidden inputs per request (CSRF tokens and
// similar).
type HiddenFieldsFunc func(r *http.Request) []render.HiddenField

// Option configures a Processor.
type Option func(*Processor)

// WithStore sets where accepted submissions are logged for definitions with
// LogData enabled.
func WithStore(store formlog.Store) Option {
	return func(p *Processor) {
		p.store = store
	}
}

// WithLogger sets the processor logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithHiddenFields registers a provider of extra hidden inputs.
func WithHiddenFields(fn HiddenFieldsFunc) Option {
	return func(p *Processor) {
		p.hidden = fn
	}
}

// WithTranslator localises labels, help texts and validation messages for
// the locale negotiated from Accept-Language.
func WithTranslator(t render.Translator, onMissing render.MissingTranslationHandler) Option {
	return func(p *Processor) {
		p.localizer = render.Localizer{Translator: t, OnMissing: onMissing}
	}
}

// WithLoggedEntriesLimit caps how many logged submissions are exposed to
// templates when DisplayLoggedData is set.
func WithLoggedEntriesLimit(limit int) Option {
	return func(p *Processor) {
		if limit > 0 {
			p.loggedLimit = limit
		}
	}
}

// Processor binds requests to form definitions.
type Processor struct {
	store       formlog.Store
	logger      *zap.Logger
	hidden      HiddenFieldsFunc
	loggedLimit int
	localizer   render.Localizer

	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

// NewProcessor constructs a Processor.
func NewProcessor(options ...Option) *Processor {
	p := &Processor{
		logger:      zap.NewNop(),
		loggedLimit: defaultLoggedEntries,
		strict:      bluemonday.StrictPolicy(),
		ugc:         bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// ProcessForm validates a submission of def carried by r, runs the success
// actions and returns the template context. extra is merged into the
// context first so form keys win.
func (p *Processor) ProcessForm(r *http.Request, def *FormDefinition, extra map[string]any) (Result, error) {
	if r == nil {
		return Result{}, fmt.Errorf("designer: request is nil")
	}
	if def == nil {
		return Result{}, fmt.Errorf("designer: form definition is nil")
	}

	locale := render.RequestLocale(r)
	state, err := p.bind(r, def, locale)
	if err != nil {
		return Result{}, err
	}

	if state.submitted && state.valid() {
		if def.LogData {
			if err := p.logSubmission(r, def, state); err != nil {
				return Result{}, err
			}
		}
		if def.SuccessRedirect {
			target := strings.TrimSpace(def.RedirectTo)
			if target == "" {
				target = requestPath(r)
			}
			p.logger.Debug("form accepted, redirecting",
				zap.String("form", def.Name),
				zap.String("location", target),
			)
			return Result{Response: response.RedirectWithStatus(target, http.StatusSeeOther)}, nil
		}
		state.success = true
		if def.SuccessClearData {
			state.values = initialValues(def)
		}
	}

	ctx := make(map[string]any, len(extra)+8)
	for key, value := range extra {
		ctx[key] = value
	}
	for key, value := range p.context(r, def, state, locale) {
		ctx[key] = value
	}
	if def.DisplayLoggedData && p.store != nil {
		logs, err := p.loggedEntries(r, def)
		if err != nil {
			return Result{}, err
		}
		ctx["logs"] = logs
	}
	return Result{Context: ctx}, nil
}

type formState struct {
	submitted bool
	success   bool
	values    map[string]string
	errors    render.ErrorMapping
}

func (s formState) valid() bool {
	return len(s.errors.Fields) == 0 && len(s.errors.Form) == 0
}

func (p *Processor) bind(r *http.Request, def *FormDefinition, locale string) (formState, error) {
	state := formState{values: initialValues(def)}
	if r.Method != def.Method {
		return state, nil
	}
	if err := r.ParseForm(); err != nil {
		return state, fmt.Errorf("designer: parse form %q: %w", def.Name, err)
	}
	source := r.PostForm
	if def.Method == http.MethodGet {
		source = r.Form
	}
	if strings.TrimSpace(source.Get(SubmissionField)) != def.Name {
		return state, nil
	}

	state.submitted = true
	payload := make(map[string][]string)
	for _, field := range def.Fields {
		raw, present := source[field.Name]
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}
		cleaned, errs := cleanField(field, value, present)
		state.values[field.Name] = cleaned
		for _, fe := range errs {
			payload[field.Name] = append(payload[field.Name], p.localizer.Text(locale, fe.key, fe.fallback, fe.args...))
		}
	}
	state.errors = render.MapErrors(def.FieldNames(), payload)
	return state, nil
}

func (p *Processor) logSubmission(r *http.Request, def *FormDefinition, state formState) error {
	if p.store == nil {
		p.logger.Warn("form logging requested without a store", zap.String("form", def.Name))
		return nil
	}
	data := make(map[string]string, len(state.values))
	for name, value := range state.values {
		data[name] = p.plainText(value)
	}
	if err := p.store.Append(r.Context(), formlog.Entry{FormName: def.Name, Data: data}); err != nil {
		return fmt.Errorf("designer: log submission for %q: %w", def.Name, err)
	}
	return nil
}

func (p *Processor) loggedEntries(r *http.Request, def *FormDefinition) ([]map[string]any, error) {
	entries, err := p.store.List(r.Context(), def.Name, p.loggedLimit)
	if err != nil {
		return nil, fmt.Errorf("designer: list submissions for %q: %w", def.Name, err)
	}
	out := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		values := make([]map[string]any, 0, len(def.Fields))
		for _, field := range def.Fields {
			values = append(values, map[string]any{
				"label": field.Label,
				"value": entry.Data[field.Name],
			})
		}
		out = append(out, map[string]any{
			"id":         entry.ID,
			"created_at": entry.CreatedAt.Format("2006-01-02 15:04"),
			"values":     values,
		})
	}
	return out, nil
}

func (p *Processor) context(r *http.Request, def *FormDefinition, state formState, locale string) map[string]any {
	fields := make([]map[string]any, 0, len(def.Fields))
	for _, field := range def.Fields {
		value := state.values[field.Name]
		view := map[string]any{
			"name":      field.Name,
			"id":        "id_" + def.Name + "_" + field.Name,
			"label":     p.localizer.Text(locale, field.LabelKey, field.Label),
			"type":      string(field.Type),
			"value":     value,
			"checked":   field.Type == FieldBoolean && value == "true",
			"required":  field.Required,
			"help_text": p.ugc.Sanitize(p.localizer.Text(locale, field.HelpKey, field.HelpText)),
			"errors":    stringsToAny(state.errors.Fields[field.Name]),
		}
		if field.MaxLength > 0 {
			view["max_length"] = field.MaxLength
		}
		if len(field.Choices) > 0 {
			choices := make([]any, 0, len(field.Choices))
			for _, choice := range field.Choices {
				choices = append(choices, map[string]any{
					"value":    choice.Value,
					"label":    choice.Label,
					"selected": choice.Value == value,
				})
			}
			view["choices"] = choices
		}
		fields = append(fields, view)
	}

	hidden := render.MergeHiddenFields(nil, render.Hidden(SubmissionField, def.Name))
	if p.hidden != nil {
		hidden = render.MergeHiddenFields(hidden, p.hidden(r)...)
	}
	hiddenViews := make([]any, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		hiddenViews = append(hiddenViews, map[string]any{"name": field.Name, "value": field.Value})
	}

	action := strings.TrimSpace(def.Action)
	if action == "" {
		action = requestURI(r)
	}

	ctx := map[string]any{
		"form_definition": map[string]any{
			"name":  def.Name,
			"title": p.localizer.Text(locale, def.TitleKey, def.Title),
		},
		"action":       action,
		"method":       strings.ToLower(def.Method),
		"submit_label": p.localizer.Text(locale, def.SubmitLabelKey, def.SubmitLabel),
		"fields":       fields,
		"form_errors":  stringsToAny(state.errors.Form),
		"hidden":       hiddenViews,
		"form_success": state.success,
	}
	if locale != "" {
		ctx["locale"] = locale
	}
	if state.success {
		ctx["success_message"] = p.ugc.Sanitize(p.localizer.Text(locale, def.SuccessMessageKey, def.SuccessMessage))
	}
	return ctx
}

// maxSanitizePasses bounds how many layers of entity encoding plainText
// decodes.
const maxSanitizePasses = 4

// plainText strips markup from submitted values before they are stored,
// including markup hidden behind HTML entities. The result is unescaped
// text; templates escape it on output. Values still changing after
// maxSanitizePasses are stored entity-escaped.
func (p *Processor) plainText(value string) string {
	for pass := 0; pass < maxSanitizePasses; pass++ {
		clean := html.UnescapeString(p.strict.Sanitize(value))
		if clean == value {
			return clean
		}
		value = clean
	}
	return p.strict.Sanitize(value)
}

// requestURI prefers the URI as received so forms mounted behind
// http.StripPrefix still post back to the public address.
func requestURI(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

func requestPath(r *http.Request) string {
	uri := requestURI(r)
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	if uri == "" {
		return "/"
	}
	return uri
}

func initialValues(def *FormDefinition) map[string]string {
	values := make(map[string]string, len(def.Fields))
	for _, field := range def.Fields {
		values[field.Name] = field.Initial
	}
	return values
}

func stringsToAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, value := range in {
		out = append(out, value)
	}
	return out
}
