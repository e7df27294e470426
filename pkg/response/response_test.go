package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/response"
)

func TestRedirect_DefaultsToFound(t *testing.T) {
	resp := response.Redirect(" /thanks/ ")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Location(); got != "/thanks/" {
		t.Fatalf("unexpected location %q", got)
	}
	if !resp.IsRedirect() {
		t.Fatalf("expected redirect")
	}
}

func TestRedirectWithStatus_FallsBackOnUnknownCode(t *testing.T) {
	if got := response.RedirectWithStatus("/a", http.StatusSeeOther).StatusCode; got != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", got)
	}
	if got := response.RedirectWithStatus("/a", http.StatusOK).StatusCode; got != http.StatusFound {
		t.Fatalf("expected fallback 302, got %d", got)
	}
}

func TestIsRedirect(t *testing.T) {
	cases := map[string]struct {
		resp *response.Response
		want bool
	}{
		"nil":              {resp: nil, want: false},
		"ok":               {resp: response.New(http.StatusOK, []byte("hi")), want: false},
		"3xx-no-location":  {resp: response.New(http.StatusFound, nil), want: false},
		"3xx-and-location": {resp: response.Redirect("/x"), want: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.resp.IsRedirect(); got != tc.want {
				t.Fatalf("IsRedirect() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWriteTo_CopiesHeadersStatusAndBody(t *testing.T) {
	resp := response.New(http.StatusTeapot, []byte("short and stout"))
	resp.Header.Add("X-Multi", "a")
	resp.Header.Add("X-Multi", "b")

	rec := httptest.NewRecorder()
	rec.Header().Set("X-Multi", "stale")
	if err := resp.WriteTo(rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if diff := cmp.Diff([]string{"a", "b"}, rec.Header().Values("X-Multi")); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if rec.Body.String() != "short and stout" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestWriteTo_NilResponse(t *testing.T) {
	var resp *response.Response
	if err := resp.WriteTo(httptest.NewRecorder()); err == nil {
		t.Fatalf("expected error for nil response")
	}
}
