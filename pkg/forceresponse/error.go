package forceresponse

import (
	"errors"

	"github.com/goliatone/go-formdesigner/pkg/response"
)

// Error carries a response past layers that can only return content. It is a
// control signal, not a failure.
type Error struct {
	resp *response.Response
}

// New wraps resp. The pointer is stored as-is.
func New(resp *response.Response) *Error {
	return &Error{resp: resp}
}

// Raise panics with a carrier for resp. Use it only where returning an error
// is not possible; Middleware recovers it.
func Raise(resp *response.Response) {
	panic(New(resp))
}

// Response returns the carried response.
func (e *Error) Response() *response.Response {
	if e == nil {
		return nil
	}
	return e.resp
}

func (e *Error) Error() string {
	if e == nil || e.resp == nil {
		return "forceresponse: forced response"
	}
	if location := e.resp.Location(); location != "" {
		return "forceresponse: forced redirect to " + location
	}
	return "forceresponse: forced response"
}

// As reports whether err carries a forced response anywhere in its %w chain
// and returns it.
func As(err error) (*response.Response, bool) {
	var carrier *Error
	if !errors.As(err, &carrier) || carrier == nil {
		return nil, false
	}
	return carrier.resp, true
}
