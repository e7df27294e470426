// Package designer processes forms described by data rather than code.
//
// A FormDefinition lists fields, where submissions go and what happens after
// a valid submission (a message, a redirect, a log entry). Definitions are
// usually loaded from YAML:
//
//	forms:
//	  - name: contact
//	    title: Contact us
//	    success_redirect: true
//	    redirect_to: /thanks/
//	    log_data: true
//	    fields:
//	      - name: email
//	        label: Email
//	        type: email
//	        required: true
//
// Processor.ProcessForm binds the request to a definition, validates it and
// returns either template context or, for a successful submission with
// success_redirect set, a redirect response.
package designer
