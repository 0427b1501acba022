// Package httpkit is what modules mount their routes with
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "csvsplit/internal/platform/net/http"
)

type (
	// Envelope is the json body of every non download response
	Envelope = phttp.Envelope

	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// Call adapts fn to a Handler, a returned Response is written as is,
// anything else is wrapped in a 200 envelope and errors are mapped
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Attachment returns a file download
func Attachment(filename, contentType string, data []byte) Response {
	return phttp.Attachment(filename, contentType, data)
}
