package response

import (
	"fmt"
	"net/http"
	"strings"
)

// Response is a fully built HTTP reply (status, headers, body). Producers hand
// it over as a pointer; consumers write it out without mutating it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New returns a response with the given status and body and an empty header
// set.
func New(status int, body []byte) *Response {
	return &Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       body,
	}
}

// Redirect builds a 302 Found response pointing at url.
func Redirect(url string) *Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectWithStatus builds a redirect using code. Codes that are not one of
// 301, 302, 303, 307 or 308 fall back to 302.
func RedirectWithStatus(url string, code int) *Response {
	if !isRedirectCode(code) {
		code = http.StatusFound
	}
	resp := New(code, nil)
	resp.Header.Set("Location", strings.TrimSpace(url))
	return resp
}

// IsRedirect reports whether the response is a 3xx carrying a Location.
func (r *Response) IsRedirect() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.Location() != ""
}

// Location returns the Location header, if any.
func (r *Response) Location() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get("Location"))
}

// WriteTo copies headers, status and body onto w.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	if r == nil {
		return fmt.Errorf("response: nil response")
	}
	if w == nil {
		return fmt.Errorf("response: nil writer")
	}
	dst := w.Header()
	for key, values := range r.Header {
		dst.Del(key)
		for _, value := range values {
			dst.Add(key, value)
		}
	}
	status := r.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(r.Body) == 0 {
		return nil
	}
	if _, err := w.Write(r.Body); err != nil {
		return fmt.Errorf("response: write body: %w", err)
	}
	return nil
}

func isRedirectCode(code int) bool {
	switch code {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}
