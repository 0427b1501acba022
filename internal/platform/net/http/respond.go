// Package http holds the router seam, the response envelope and the server
package http

import (
	"encoding/json"
	"mime"
	stdhttp "net/http"
	"strconv"

	perr "csvsplit/internal/platform/errors"
	pnet "csvsplit/internal/platform/net"
)

// Envelope is the body of every json response. Data and Error are exclusive
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func newEnvelope(status int, reqID string) Envelope {
	return Envelope{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: reqID}
}

// JSON encodes v with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// ErrorEnvelope maps err to its status and envelope
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	env := newEnvelope(status, reqID)
	wire := perr.WireFrom(err)
	env.Code, env.Error = wire.Code, wire.Message
	return status, env
}

// Response is what return-style handlers produce. A Body holding an error
// renders as an error envelope, a non nil Raw skips the envelope entirely
type Response struct {
	Status      int
	Body        any
	Header      stdhttp.Header
	Raw         []byte
	ContentType string
}

// Handle adapts a Response returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		resp.render(w, pnet.RequestID(r.Context()))
	}
}

func (resp Response) render(w stdhttp.ResponseWriter, reqID string) {
	dst := w.Header()
	for name, values := range resp.Header {
		dst[name] = append(dst[name], values...)
	}

	if err, isErr := resp.Body.(error); isErr && err != nil {
		status, env := ErrorEnvelope(err, reqID)
		JSON(w, status, env)
		return
	}

	status := stdhttp.StatusOK
	if resp.Status != 0 {
		status = resp.Status
	}
	if resp.Raw == nil {
		env := newEnvelope(status, reqID)
		env.Data = resp.Body
		JSON(w, status, env)
		return
	}

	ct := "application/octet-stream"
	if resp.ContentType != "" {
		ct = resp.ContentType
	}
	dst.Set("Content-Type", ct)
	dst.Set("Content-Length", strconv.Itoa(len(resp.Raw)))
	w.WriteHeader(status)
	_, _ = w.Write(resp.Raw)
}

// OK wraps data in a 200 envelope
func OK(data any) Response { return Response{Body: data} }

// Error returns a response whose status and envelope come from err
func Error(err error) Response { return Response{Body: err} }

// Attachment returns a 200 download of data named filename
func Attachment(filename, contentType string, data []byte) Response {
	h := stdhttp.Header{}
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if data == nil {
		data = []byte{}
	}
	return Response{Header: h, Raw: data, ContentType: contentType}
}
