package bind

import (
	"errors"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	perr "csvsplit/internal/platform/errors"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// MultipartOptions controls multipart parsing
type MultipartOptions struct {
	MaxBytes  int64 // whole request cap, default 32MB
	MaxMemory int64 // parts above this spill to temp files, default 8MB
}

func defaultMultipartOptions() MultipartOptions {
	return MultipartOptions{MaxBytes: 32 << 20, MaxMemory: 8 << 20}
}

// Upload is one file part read into memory
type Upload struct {
	Filename string
	Data     []byte
}

// ParseMultipart decodes multipart form values into T by `form` tag,
// validates T and reads the file part named fileField
func ParseMultipart[T any](r *http.Request, fileField string, opts ...MultipartOptions) (T, *Upload, error) {
	var zero T
	o := defaultMultipartOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}

	if err := r.ParseMultipartForm(o.MaxMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return zero, nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "upload exceeds %d bytes", tooBig.Limit), fileField)
		}
		return zero, nil, perr.Wrap(err, perr.ErrorCodeValidation, "invalid multipart form")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var dst T
	if err := decodeForm(&dst, r.MultipartForm.Value); err != nil {
		return zero, nil, err
	}
	if err := validateForm(dst); err != nil {
		return zero, nil, err
	}

	f, fh, err := r.FormFile(fileField)
	if err != nil {
		return zero, nil, perr.WithField(perr.InvalidArgf("%s is required", fileField), fileField)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return zero, nil, perr.Wrap(err, perr.ErrorCodeIO, "read upload")
	}
	return dst, &Upload{Filename: fh.Filename, Data: data}, nil
}

// ParseQuery decodes and validates T from the url query string, fields bind by `form` tag
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	if err := decodeForm(&dst, r.URL.Query()); err != nil {
		return dst, err
	}
	if err := validateForm(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func validateForm(v any) error {
	err := Get().Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(inv, perr.ErrorCodeValidation, "validation error")
	}
	field, msg := FirstViolation(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeInvalidArgument, "%s", msg), field)
}

// forms decodes into the `form` tag only, untagged fields are left alone
var forms = sync.OnceValue(func() *form.Decoder {
	d := form.NewDecoder()
	d.SetMode(form.ModeExplicit)
	return d
})

// decodeForm fills dst from values. A malformed value fails with its field set
func decodeForm(dst any, values url.Values) error {
	err := forms().Decode(dst, nonBlank(values))
	if err == nil {
		return nil
	}
	var bad form.DecodeErrors
	if errors.As(err, &bad) {
		name := slices.Sorted(maps.Keys(bad))[0]
		return perr.WithField(perr.Wrapf(bad[name], perr.ErrorCodeInvalidArgument, "%s has an invalid value", name), name)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "decode form")
}

// nonBlank trims each value and drops blank ones so they keep the zero value
func nonBlank(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}
