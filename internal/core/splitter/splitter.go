// Package splitter partitions a CSV document into fixed-size row chunks and
// returns each chunk as a named CSV blob, or all of them as one ZIP archive
//
// Cells are never type-coerced: every value is read and written back as the
// exact text that appeared in the input
package splitter

import (
	"context"
	"io"
	"strings"
	"time"

	perr "csvsplit/internal/platform/errors"
)

// Artifact is one named output blob
type Artifact struct {
	Name string
	Data []byte
}

// Size returns the payload length in bytes
func (a Artifact) Size() int { return len(a.Data) }

// Options tunes a single Split call, the zero value is the historical behavior
type Options struct {
	// Archive packages all chunks into {prefix}_split_files.zip
	Archive bool

	// Count selects the chunk count policy
	Count CountPolicy

	// Stager packages the encoded chunks, nil means MemoryStager
	Stager Stager

	// ModTime stamps archive entries, zero means time.Now()
	ModTime time.Time
}

// Result is the outcome of a successful Split
type Result struct {
	Artifacts []Artifact
	Columns   int
	Rows      int
	Chunks    int
}

// Bytes returns the summed artifact size
func (r Result) Bytes() int {
	n := 0
	for _, a := range r.Artifacts {
		n += a.Size()
	}
	return n
}

// canceled reports a done ctx as Unavailable, errors.Is still sees ctx.Err()
func canceled(ctx context.Context) error {
	return perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "split canceled")
}

// now is a seam for archive timestamps
var now = time.Now

// Split reads a CSV document from r and partitions it into chunks of chunkSize rows
// On error no artifacts are returned and any temporary storage has been removed
func Split(ctx context.Context, r io.Reader, prefix string, chunkSize int, opt Options) (Result, error) {
	if err := validate(prefix, chunkSize); err != nil {
		return Result{}, err
	}
	if err := canceled(ctx); err != nil {
		return Result{}, err
	}

	t, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	return SplitTable(ctx, t, prefix, chunkSize, opt)
}

// SplitTable is Split over an already parsed table
func SplitTable(ctx context.Context, t *Table, prefix string, chunkSize int, opt Options) (Result, error) {
	if err := validate(prefix, chunkSize); err != nil {
		return Result{}, err
	}

	chunks, err := Chunks(t, prefix, chunkSize, opt.Count)
	if err != nil {
		return Result{}, err
	}

	st := opt.Stager
	if st == nil {
		st = MemoryStager{}
	}
	mt := opt.ModTime
	if mt.IsZero() {
		mt = now()
	}
	archiveName := ""
	if opt.Archive {
		archiveName = ArchiveName(prefix)
	}

	out, err := st.Stage(ctx, chunks, archiveName, mt)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Artifacts: out,
		Columns:   t.Width(),
		Rows:      t.Len(),
		Chunks:    len(chunks),
	}, nil
}

// Chunks encodes every chunk of t as a named CSV artifact, in order
func Chunks(t *Table, prefix string, chunkSize int, p CountPolicy) ([]Artifact, error) {
	if err := validate(prefix, chunkSize); err != nil {
		return nil, err
	}
	n := ChunkCount(t.Len(), chunkSize, p)
	out := make([]Artifact, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := bounds(i, chunkSize, t.Len())
		b, err := Encode(t.Header, t.Rows[lo:hi])
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{Name: ChunkName(prefix, i), Data: b})
	}
	return out, nil
}

func validate(prefix string, chunkSize int) error {
	if strings.TrimSpace(prefix) == "" {
		return perr.WithField(perr.InvalidArgf("prefix must not be empty"), "prefix")
	}
	if chunkSize < 1 {
		return perr.WithField(perr.InvalidArgf("chunk size must be at least 1, got %d", chunkSize), "chunk_size")
	}
	return nil
}
