package forceresponse

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// HandlerFunc is a request handler that reports failures instead of writing
// error pages itself. Handlers must not write to w before returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler renders errors that were not converted into a forced
// response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// HTTPError lets errors choose the status written by DefaultErrorHandler.
type HTTPError interface {
	error
	StatusCode() int
}

type config struct {
	logger       *zap.Logger
	errorHandler ErrorHandler
}

// Option configures Middleware.
type Option func(*config)

// WithLogger sets the logger used for overrides and unhandled errors.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.errorHandler = handler
		}
	}
}

// Middleware adapts next into an http.Handler. Every error returned by next,
// and every panic whose value is an error, goes through Intercept; forced
// responses are written to the client, everything else reaches the error
// handler.
func Middleware(next HandlerFunc, options ...Option) http.Handler {
	cfg := &config{
		logger:       zap.NewNop(),
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if next == nil {
			cfg.errorHandler(w, r, errors.New("forceresponse: handler is nil"))
			return
		}
		err := serve(next, w, r)
		if err == nil {
			return
		}
		cfg.handle(w, r, err)
	})
}

func serve(next HandlerFunc, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		panicErr, ok := recovered.(error)
		if !ok || errors.Is(panicErr, http.ErrAbortHandler) {
			panic(recovered)
		}
		err = panicErr
	}()
	return next(w, r)
}

func (cfg *config) handle(w http.ResponseWriter, r *http.Request, err error) {
	resp, unhandled := Intercept(r, err)
	if resp != nil {
		cfg.logger.Debug("forced response",
			zap.String("path", r.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("location", resp.Location()),
		)
		if writeErr := resp.WriteTo(w); writeErr != nil {
			cfg.logger.Warn("write forced response", zap.Error(writeErr))
		}
		return
	}
	if unhandled == nil {
		unhandled = err
	}
	cfg.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(unhandled),
	)
	cfg.errorHandler(w, r, unhandled)
}

// DefaultErrorHandler writes the status text for err. Errors implementing
// HTTPError pick the status, including ones raised inside a template;
// everything else is a 500.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := http.StatusInternalServerError
	if status, ok := statusCode(err); ok {
		code = status
	}
	http.Error(w, http.StatusText(code), code)
}

func statusCode(err error) (int, bool) {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) || httpErr == nil {
		cause, ok := templateCause(err)
		if !ok || !errors.As(cause, &httpErr) || httpErr == nil {
			return 0, false
		}
	}
	if status := httpErr.StatusCode(); status > 0 {
		return status, true
	}
	return 0, false
}
