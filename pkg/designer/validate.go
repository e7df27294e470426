package designer

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// fieldError is a validation failure: a translation key plus the English
// text (a fmt format when args are set).
type fieldError struct {
	key      string
	fallback string
	args     []any
}

var (
	errRequired      = fieldError{key: "formdesigner.errors.required", fallback: "This field is required."}
	errInvalidEmail  = fieldError{key: "formdesigner.errors.email", fallback: "Enter a valid email address."}
	errInvalidURL    = fieldError{key: "formdesigner.errors.url", fallback: "Enter a valid URL."}
	errInvalidNumber = fieldError{key: "formdesigner.errors.integer", fallback: "Enter a whole number."}
	errInvalidChoice = fieldError{key: "formdesigner.errors.choice", fallback: "Select a valid choice."}
	errNoMatch       = fieldError{key: "formdesigner.errors.regex", fallback: "Enter a valid value."}
)

func errMaxLength(limit, count int) fieldError {
	return fieldError{
		key:      "formdesigner.errors.max_length",
		fallback: "Ensure this value has at most %d characters (it has %d).",
		args:     []any{limit, count},
	}
}

// cleanField validates raw for field and returns the cleaned value together
// with any failures.
func cleanField(field FieldDefinition, raw string, present bool) (string, []fieldError) {
	if field.Type == FieldBoolean {
		checked := present && isTruthy(raw)
		if field.Required && !checked {
			return "false", []fieldError{errRequired}
		}
		return strconv.FormatBool(checked), nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		if field.Required {
			return "", []fieldError{errRequired}
		}
		return "", nil
	}

	var errs []fieldError
	if field.MaxLength > 0 {
		if count := utf8.RuneCountInString(value); count > field.MaxLength {
			errs = append(errs, errMaxLength(field.MaxLength, count))
		}
	}

	switch field.Type {
	case FieldEmail:
		if !validEmail(value) {
			errs = append(errs, errInvalidEmail)
		}
	case FieldURL:
		if !validURL(value) {
			errs = append(errs, errInvalidURL)
		}
	case FieldInteger:
		number, err := strconv.Atoi(value)
		if err != nil {
			errs = append(errs, errInvalidNumber)
		} else {
			value = strconv.Itoa(number)
		}
	case FieldChoice:
		if !hasChoice(field.Choices, value) {
			errs = append(errs, errInvalidChoice)
		}
	}

	if field.Regex != "" && !matches(field, value) {
		errs = append(errs, errNoMatch)
	}
	return value, errs
}

func matches(field FieldDefinition, value string) bool {
	pattern := field.pattern
	if pattern == nil {
		compiled, err := regexp.Compile(field.Regex)
		if err != nil {
			return false
		}
		pattern = compiled
	}
	return pattern.MatchString(value)
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Address == value && strings.Contains(addr.Address, "@")
}

func validURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func hasChoice(choices []Choice, value string) bool {
	for _, choice := range choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
