package designer

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// FieldType selects the input widget and the validation applied to a field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldInteger  FieldType = "integer"
	FieldBoolean  FieldType = "boolean"
	FieldChoice   FieldType = "choice"
	FieldURL      FieldType = "url"
	FieldHidden   FieldType = "hidden"
)

// Known reports whether t is a supported field type.
func (t FieldType) Known() bool {
	switch t {
	case FieldText, FieldTextarea, FieldEmail, FieldInteger, FieldBoolean, FieldChoice, FieldURL, FieldHidden:
		return true
	default:
		return false
	}
}

// Choice is one option of a choice field.
type Choice struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FieldDefinition describes a single input.
type FieldDefinition struct {
	Name      string    `yaml:"name" json:"name"`
	Label     string    `yaml:"label" json:"label"`
	LabelKey  string    `yaml:"label_key" json:"label_key,omitempty"`
	Type      FieldType `yaml:"type" json:"type"`
	Required  bool      `yaml:"required" json:"required"`
	Initial   string    `yaml:"initial" json:"initial,omitempty"`
	HelpText  string    `yaml:"help_text" json:"help_text,omitempty"`
	HelpKey   string    `yaml:"help_text_key" json:"help_text_key,omitempty"`
	MaxLength int       `yaml:"max_length" json:"max_length,omitempty"`
	Regex     string    `yaml:"regex" json:"regex,omitempty"`
	Choices   []Choice  `yaml:"choices" json:"choices,omitempty"`

	pattern *regexp.Regexp
}

// FormDefinition is the data-driven description of a form and of what
// happens to its submissions.
type FormDefinition struct {
	Name              string            `yaml:"name" json:"name"`
	Title             string            `yaml:"title" json:"title"`
	TitleKey          string            `yaml:"title_key" json:"title_key,omitempty"`
	Action            string            `yaml:"action" json:"action,omitempty"`
	Method            string            `yaml:"method" json:"method"`
	SubmitLabel       string            `yaml:"submit_label" json:"submit_label"`
	SubmitLabelKey    string            `yaml:"submit_label_key" json:"submit_label_key,omitempty"`
	SuccessMessage    string            `yaml:"success_message" json:"success_message,omitempty"`
	SuccessMessageKey string            `yaml:"success_message_key" json:"success_message_key,omitempty"`
	SuccessRedirect   bool              `yaml:"success_redirect" json:"success_redirect"`
	SuccessClearData  bool              `yaml:"success_clear_data" json:"success_clear_data"`
	RedirectTo        string            `yaml:"redirect_to" json:"redirect_to,omitempty"`
	LogData           bool              `yaml:"log_data" json:"log_data"`
	DisplayLoggedData bool              `yaml:"display_logged_data" json:"display_logged_data"`
	FormTemplateName  string            `yaml:"form_template_name" json:"form_template_name,omitempty"`
	Fields            []FieldDefinition `yaml:"fields" json:"fields"`
}

// Prepare normalises defaults and compiles field patterns. It is called by
// the loaders; definitions built in code should call it once before use.
func (d *FormDefinition) Prepare() error {
	if d == nil {
		return fmt.Errorf("designer: form definition is nil")
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("designer: form name is required")
	}
	d.Method = strings.ToUpper(strings.TrimSpace(d.Method))
	if d.Method == "" {
		d.Method = http.MethodPost
	}
	if d.Method != http.MethodPost && d.Method != http.MethodGet {
		return fmt.Errorf("designer: form %q: unsupported method %q", d.Name, d.Method)
	}
	if strings.TrimSpace(d.SubmitLabel) == "" {
		d.SubmitLabel = "Submit"
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = d.Name
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i := range d.Fields {
		field := &d.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("designer: form %q: field %d has no name", d.Name, i)
		}
		if field.Name == SubmissionField {
			return fmt.Errorf("designer: form %q: field name %q is reserved", d.Name, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("designer: form %q: duplicate field %q", d.Name, field.Name)
		}
		seen[field.Name] = struct{}{}

		if field.Type == "" {
			field.Type = FieldText
		}
		if !field.Type.Known() {
			return fmt.Errorf("designer: form %q: field %q: unknown type %q", d.Name, field.Name, field.Type)
		}
		if field.Type == FieldChoice && len(field.Choices) == 0 {
			return fmt.Errorf("designer: form %q: field %q: choice field needs choices", d.Name, field.Name)
		}
		if strings.TrimSpace(field.Label) == "" {
			field.Label = field.Name
		}
		if field.Regex != "" {
			pattern, err := regexp.Compile(field.Regex)
			if err != nil {
				return fmt.Errorf("designer: form %q: field %q: regex: %w", d.Name, field.Name, err)
			}
			field.pattern = pattern
		}
	}
	return nil
}

// FieldNames returns field names in declaration order.
func (d *FormDefinition) FieldNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}
