// Package http provides http transport for splits
package http

import (
	stdhttp "net/http"
	"strings"

	"csvsplit/internal/modkit/httpkit"
	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/net/http/bind"
	"csvsplit/internal/services/api/split/domain"
	svc "csvsplit/internal/services/api/split/service"
)

// Options tunes the transport
type Options struct {
	MaxUploadBytes int64 // zero means the bind default
}

// Register mounts split endpoints on the given router
func Register(r httpkit.Router, s svc.Service, opts Options) {
	h := &handlers{svc: s, opts: opts}

	// multipart upload, returns json or streams the single artifact
	r.Post("/", httpkit.Call(h.split))

	// ledger
	r.Get("/runs", httpkit.Call(h.runs))
}

type handlers struct {
	svc  svc.Service
	opts Options
}

// swagger:route POST /splits Splits splitsCreate
// @Summary Split a CSV upload into chunks
// @Description Returns every chunk base64 encoded, or with download=true streams the archive or the single chunk
// @Tags Splits
// @Accept multipart/form-data
// @Produce json
// @Produce application/zip
// @Produce text/csv
// @Param file formData file true "CSV document with a header row"
// @Param prefix formData string false "File name prefix" default(chunked_data)
// @Param chunk_size formData int false "Rows per chunk" default(200)
// @Param archive formData bool false "Package all chunks into one zip"
// @Param download formData bool false "Stream the artifact instead of json"
// @Success 200 {object} domain.SplitResult "ok"
// @Failure 400 {object} httpkit.Envelope "malformed csv or form"
// @Failure 422 {object} httpkit.Envelope "invalid argument"
// @Router /splits [post]
func (h *handlers) split(r *stdhttp.Request) (any, error) {
	var mo []bind.MultipartOptions
	if h.opts.MaxUploadBytes > 0 {
		mo = append(mo, bind.MultipartOptions{MaxBytes: h.opts.MaxUploadBytes, MaxMemory: 8 << 20})
	}
	in, up, err := bind.ParseMultipart[domain.SplitInput](r, "file", mo...)
	if err != nil {
		return nil, err
	}

	res, err := h.svc.Split(r.Context(), in, up.Data)
	if err != nil {
		return nil, err
	}
	if !in.Download {
		return res, nil
	}
	if len(res.Artifacts) != 1 {
		return nil, perr.WithField(perr.InvalidArgf("download of multiple chunks requires archive=true"), "download")
	}
	a := res.Artifacts[0]
	return httpkit.Attachment(a.Name, contentType(a.Name), a.Content), nil
}

// swagger:route GET /splits/runs Splits splitsRuns
// @Summary Recent split runs
// @Tags Splits
// @Produce json
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} domain.Run "ok"
// @Failure 503 {object} httpkit.Envelope "ledger disabled"
// @Router /splits/runs [get]
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseQuery[domain.RunsInput](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Runs(r.Context(), in)
}

func contentType(name string) string {
	if strings.HasSuffix(name, ".zip") {
		return "application/zip"
	}
	return "text/csv; charset=utf-8"
}
