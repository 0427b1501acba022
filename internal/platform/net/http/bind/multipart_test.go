package bind

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "csvsplit/internal/platform/errors"
)

type uploadForm struct {
	Prefix    string `form:"prefix" json:"prefix" validate:"omitempty,basename"`
	ChunkSize int    `form:"chunk_size" json:"chunk_size" validate:"omitempty,min=1"`
	Archive   bool   `form:"archive" json:"archive"`
	Ignored   string `form:"-"`
}

func multipartReq(t *testing.T, fields map[string]string, file string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withFile {
		fw, err := mw.CreateFormFile("file", "data.csv")
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = fw.Write([]byte(file))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseMultipart_Success(t *testing.T) {
	req := multipartReq(t, map[string]string{
		"prefix":     "orders",
		"chunk_size": " 25 ",
		"archive":    "true",
		"Ignored":    "x",
	}, "a,b\n1,2\n", true)

	in, up, err := ParseMultipart[uploadForm](req, "file")
	if err != nil {
		t.Fatalf("ParseMultipart: %v", err)
	}
	if in.Prefix != "orders" || in.ChunkSize != 25 || !in.Archive || in.Ignored != "" {
		t.Fatalf("decoded = %+v", in)
	}
	if up.Filename != "data.csv" || string(up.Data) != "a,b\n1,2\n" {
		t.Fatalf("upload = %q %q", up.Filename, up.Data)
	}
}

func TestParseMultipart_EmptyFieldsKeepZero(t *testing.T) {
	req := multipartReq(t, map[string]string{"prefix": "", "chunk_size": ""}, "a\n", true)
	in, _, err := ParseMultipart[uploadForm](req, "file")
	if err != nil {
		t.Fatalf("ParseMultipart: %v", err)
	}
	if in.Prefix != "" || in.ChunkSize != 0 {
		t.Fatalf("decoded = %+v", in)
	}
}

func TestParseMultipart_Errors(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		file   bool
		code   perr.ErrorCode
		field  string
	}{
		{"bad int", map[string]string{"chunk_size": "ten"}, true, perr.ErrorCodeInvalidArgument, "chunk_size"},
		{"bad bool", map[string]string{"archive": "maybe"}, true, perr.ErrorCodeInvalidArgument, "archive"},
		{"int overflow", map[string]string{"chunk_size": "99999999999999999999"}, true, perr.ErrorCodeInvalidArgument, "chunk_size"},
		{"path prefix", map[string]string{"prefix": "../x"}, true, perr.ErrorCodeInvalidArgument, "prefix"},
		{"negative size", map[string]string{"chunk_size": "-1"}, true, perr.ErrorCodeInvalidArgument, "chunk_size"},
		{"missing file", map[string]string{}, false, perr.ErrorCodeInvalidArgument, "file"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ParseMultipart[uploadForm](multipartReq(t, c.fields, "a\n", c.file), "file")
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("want project error, got %v", err)
			}
			if e.Code() != c.code || e.Field() != c.field {
				t.Fatalf("code=%v field=%q, want %v %q (%v)", e.Code(), e.Field(), c.code, c.field, err)
			}
		})
	}
}

func TestParseMultipart_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"prefix":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	_, _, err := ParseMultipart[uploadForm](req, "file")
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseMultipart_TooLarge(t *testing.T) {
	req := multipartReq(t, nil, strings.Repeat("x", 4096), true)
	_, _, err := ParseMultipart[uploadForm](req, "file", MultipartOptions{MaxBytes: 512, MaxMemory: 256})
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
	}
}

type listQuery struct {
	Limit int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Sort  string `json:"sort"`
}

func TestParseQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/runs?limit=25", nil)
	q, err := ParseQuery[listQuery](req)
	if err != nil || q.Limit != 25 {
		t.Fatalf("q=%+v err=%v", q, err)
	}

	q, err = ParseQuery[listQuery](httptest.NewRequest(http.MethodGet, "/runs", nil))
	if err != nil || q.Limit != 0 {
		t.Fatalf("empty q=%+v err=%v", q, err)
	}

	q, err = ParseQuery[listQuery](httptest.NewRequest(http.MethodGet, "/runs?limit=+7+&sort=id", nil))
	if err != nil || q.Limit != 7 || q.Sort != "" {
		t.Fatalf("q=%+v err=%v, untagged fields must not bind", q, err)
	}

	for _, raw := range []string{"/runs?limit=abc", "/runs?limit=500", "/runs?limit=0x"} {
		_, err := ParseQuery[listQuery](httptest.NewRequest(http.MethodGet, raw, nil))
		e, ok := perr.As(err)
		if !ok || e.Code() != perr.ErrorCodeInvalidArgument || e.Field() != "limit" {
			t.Fatalf("%s: want invalid limit, got %v", raw, err)
		}
	}
}
