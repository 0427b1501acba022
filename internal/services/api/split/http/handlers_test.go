package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "csvsplit/internal/platform/errors"
	phttp "csvsplit/internal/platform/net/http"
	"csvsplit/internal/services/api/split/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	gotIn  domain.SplitInput
	gotCSV string
	res    domain.SplitResult
	err    error

	runsIn domain.RunsInput
	runs   []domain.Run
}

func (f *fakeSvc) Split(_ context.Context, in domain.SplitInput, csv []byte) (domain.SplitResult, error) {
	f.gotIn, f.gotCSV = in, string(csv)
	return f.res, f.err
}

func (f *fakeSvc) Runs(_ context.Context, in domain.RunsInput) ([]domain.Run, error) {
	f.runsIn = in
	if f.err != nil {
		return nil, f.err
	}
	return f.runs, nil
}

func newServer(f *fakeSvc, opts Options) stdhttp.Handler {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/splits", func(rr phttp.Router) { Register(rr, f, opts) })
	return r.Mux()
}

func upload(t *testing.T, fields map[string]string, csv string) *stdhttp.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile("file", "data.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write([]byte(csv))
	_ = mw.Close()
	req := httptest.NewRequest(stdhttp.MethodPost, "/splits", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestSplit_JSON(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{res: domain.SplitResult{
		RunID:     "r1",
		Prefix:    "out",
		Chunks:    1,
		Artifacts: []domain.Artifact{{Name: "out_1.csv", Size: 4, Content: []byte("a,b\n")}},
	}}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, map[string]string{"prefix": "out", "chunk_size": "2"}, "a,b\n"))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if f.gotIn.Prefix != "out" || f.gotIn.ChunkSize != 2 || f.gotCSV != "a,b\n" {
		t.Fatalf("service got %+v %q", f.gotIn, f.gotCSV)
	}
	var res domain.SplitResult
	if err := json.Unmarshal(decode(t, rec).Data, &res); err != nil {
		t.Fatalf("data: %v", err)
	}
	if res.RunID != "r1" || len(res.Artifacts) != 1 || string(res.Artifacts[0].Content) != "a,b\n" {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(rec.Body.String(), `"content":"YSxiCg=="`) {
		t.Fatalf("content must be base64: %s", rec.Body.String())
	}
}

func TestSplit_DownloadArchive(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{res: domain.SplitResult{
		Artifacts: []domain.Artifact{{Name: "out_split_files.zip", Content: []byte("PK")}},
	}}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, map[string]string{"archive": "true", "download": "true"}, "a\n"))

	if rec.Code != stdhttp.StatusOK || rec.Body.String() != "PK" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename=out_split_files.zip`) {
		t.Fatalf("disposition = %q", cd)
	}
}

func TestSplit_DownloadSingleChunk(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{res: domain.SplitResult{
		Artifacts: []domain.Artifact{{Name: "out_1.csv", Content: []byte("a\n")}},
	}}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, map[string]string{"download": "true"}, "a\n"))

	if rec.Code != stdhttp.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("status=%d ct=%q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestSplit_DownloadManyChunksRejected(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{res: domain.SplitResult{
		Artifacts: []domain.Artifact{{Name: "out_1.csv"}, {Name: "out_2.csv"}},
	}}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, map[string]string{"download": "true"}, "a\n"))

	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Code != perr.ErrorCodeInvalidArgument || !strings.Contains(env.Error, "archive=true") {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestSplit_BadPrefixRejected(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, map[string]string{"prefix": "../etc/x"}, "a\n"))

	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if f.gotCSV != "" {
		t.Fatalf("service must not run")
	}
}

func TestSplit_ServiceErrorMapped(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{err: perr.Parsef("missing header row")}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, upload(t, nil, ""))

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Code != perr.ErrorCodeParse {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestSplit_UploadTooLarge(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := httptest.NewRecorder()
	newServer(f, Options{MaxUploadBytes: 256}).ServeHTTP(rec, upload(t, nil, strings.Repeat("a,b\n", 200)))

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{runs: []domain.Run{{ID: "a", Status: domain.StatusOK}}}
	rec := httptest.NewRecorder()
	newServer(f, Options{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/splits/runs?limit=5", nil))

	if rec.Code != stdhttp.StatusOK || f.runsIn.Limit != 5 {
		t.Fatalf("status=%d limit=%d", rec.Code, f.runsIn.Limit)
	}
	var runs []domain.Run
	if err := json.Unmarshal(decode(t, rec).Data, &runs); err != nil || len(runs) != 1 || runs[0].ID != "a" {
		t.Fatalf("runs=%+v err=%v", runs, err)
	}
}

func TestRuns_BadLimitAndUnavailable(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newServer(&fakeSvc{}, Options{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/splits/runs?limit=0x", nil))
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad limit status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newServer(&fakeSvc{err: perr.Unavailablef("runs ledger is disabled")}, Options{}).
		ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/splits/runs", nil))
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("disabled status = %d", rec.Code)
	}
}
