// Package forceresponse lets code that can only produce content (plugins,
// template tags, filters) replace the whole reply for the current request.
//
// The producer returns an *Error carrying a finished response. Middleware
// sitting at the edge of the request pipeline inspects every error that
// escapes the handler, looks through the pongo2 template wrapper when
// present, and writes the carried response instead of an error page:
//
//	mux.Handle("/", forceresponse.Middleware(site.ServePage,
//		forceresponse.WithLogger(logger),
//	))
//
// Template functions called as {{ fn() }} cannot return one: pongo2 turns
// their errors into plain strings. They call Raise instead, and Middleware
// recovers the panic:
//
//	"require_login": func(user any) string {
//		if user == nil {
//			forceresponse.Raise(response.Redirect("/login/"))
//		}
//		return ""
//	},
//
// Errors that do not carry a response are handed to the configured
// ErrorHandler untouched.
package forceresponse
