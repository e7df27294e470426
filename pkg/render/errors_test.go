package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formdesigner/pkg/render"
)

func TestMapErrors(t *testing.T) {
	payload := map[string][]string{
		"name":             {"This field is required.", " This field is required. "},
		" email ":          {"Enter a valid email address."},
		"__all__":          {"Form level error"},
		"non_field_errors": {"Another form error"},
		"unknown":          {"Should fall back to form errors"},
		"message":          {"  "},
	}

	mapped := render.MapErrors([]string{"name", "email", "message"}, payload)

	wantFields := map[string][]string{
		"name":  {"This field is required."},
		"email": {"Enter a valid email address."},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Another form error", "Form level error", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
