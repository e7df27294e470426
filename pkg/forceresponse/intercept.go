package forceresponse

import (
	"errors"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formdesigner/pkg/response"
)

// maxTemplateDepth bounds how many nested template errors are peeled.
const maxTemplateDepth = 16

// Intercept decides the final reply for an error that escaped request
// handling.
//
//   - (resp, nil): err carries a forced response; send resp.
//   - (nil, err):  err is a template error whose original cause is missing;
//     err is returned untouched so normal error handling sees it.
//   - (nil, nil):  err is unrelated; no override.
func Intercept(_ *http.Request, err error) (*response.Response, error) {
	if err == nil {
		return nil, nil
	}
	cause, ok := templateCause(err)
	if !ok {
		return nil, err
	}
	if resp, found := As(cause); found {
		return resp, nil
	}
	return nil, nil
}

// templateCause peels *pongo2.Error wrappers down to the error that was
// raised inside the template. ok is false when a wrapper has no OrigError.
func templateCause(err error) (cause error, ok bool) {
	defer func() {
		if recover() != nil {
			cause, ok = nil, false
		}
	}()

	cause = err
	for depth := 0; depth < maxTemplateDepth; depth++ {
		if _, found := As(cause); found {
			return cause, true
		}
		var tplErr *pongo2.Error
		if !errors.As(cause, &tplErr) {
			return cause, true
		}
		if tplErr == nil || tplErr.OrigError == nil {
			return nil, false
		}
		cause = tplErr.OrigError
	}
	return cause, true
}
