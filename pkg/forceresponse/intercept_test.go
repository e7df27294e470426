package forceresponse_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formdesigner/pkg/forceresponse"
	"github.com/goliatone/go-formdesigner/pkg/response"
)

func TestNew_KeepsResponseIdentity(t *testing.T) {
	resp := response.Redirect("/thanks/")
	carrier := forceresponse.New(resp)
	if carrier.Response() != resp {
		t.Fatalf("expected the same response pointer")
	}
	if got := carrier.Error(); got != "forceresponse: forced redirect to /thanks/" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAs_FollowsWrapChain(t *testing.T) {
	resp := response.Redirect("/done")
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", forceresponse.New(resp)))

	got, ok := forceresponse.As(wrapped)
	if !ok || got != resp {
		t.Fatalf("expected wrapped carrier to be found, got %v %v", got, ok)
	}
	if _, ok := forceresponse.As(errors.New("plain")); ok {
		t.Fatalf("plain error must not carry a response")
	}
}

func TestIntercept_DirectCarrier(t *testing.T) {
	resp := response.Redirect("/thanks/")
	got, err := forceresponse.Intercept(newRequest(), forceresponse.New(resp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != resp {
		t.Fatalf("expected stored response, got %#v", got)
	}
}

func TestIntercept_TemplateWrappedCarrier(t *testing.T) {
	resp := response.Redirect("/thanks/")
	tplErr := &pongo2.Error{Sender: "tag:placeholder", OrigError: forceresponse.New(resp)}
	wrapped := fmt.Errorf("gotemplate: execute template %q: %w", "page.tpl", tplErr)

	got, err := forceresponse.Intercept(newRequest(), wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != resp {
		t.Fatalf("expected stored response, got %#v", got)
	}
}

func TestIntercept_NestedTemplateErrors(t *testing.T) {
	resp := response.Redirect("/nested")
	inner := &pongo2.Error{Sender: "tag:placeholder", OrigError: forceresponse.New(resp)}
	outer := &pongo2.Error{Sender: "tag:include", OrigError: fmt.Errorf("cms: render: %w", inner)}

	got, err := forceresponse.Intercept(newRequest(), outer)
	if err != nil || got != resp {
		t.Fatalf("expected nested carrier, got %v %v", got, err)
	}
}

func TestIntercept_MalformedTemplateErrorIsReturnedUntouched(t *testing.T) {
	tplErr := &pongo2.Error{Sender: "tag:placeholder"}
	var original error = tplErr

	got, err := forceresponse.Intercept(newRequest(), original)
	if got != nil {
		t.Fatalf("expected no response, got %#v", got)
	}
	if err != original {
		t.Fatalf("expected the original error back, got %#v", err)
	}
}

func TestIntercept_TemplateErrorWithUnrelatedCause(t *testing.T) {
	tplErr := &pongo2.Error{Sender: "execution", OrigError: errors.New("boom")}
	got, err := forceresponse.Intercept(newRequest(), tplErr)
	if got != nil || err != nil {
		t.Fatalf("expected no override, got %v %v", got, err)
	}
}

func TestIntercept_UnrelatedError(t *testing.T) {
	got, err := forceresponse.Intercept(newRequest(), errors.New("database down"))
	if got != nil || err != nil {
		t.Fatalf("expected no override, got %v %v", got, err)
	}
	got, err = forceresponse.Intercept(newRequest(), nil)
	if got != nil || err != nil {
		t.Fatalf("expected no override for nil, got %v %v", got, err)
	}
}

func newRequest() *http.Request {
	return httptest.NewRequest(http.MethodPost, "/contact/", nil)
}
