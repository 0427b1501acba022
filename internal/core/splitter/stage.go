package splitter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/logger"

	"github.com/google/uuid"
)

// Stager turns encoded chunks into the artifacts a caller receives
// archiveName == "" means the chunks are returned as-is
type Stager interface {
	Stage(ctx context.Context, chunks []Artifact, archiveName string, modTime time.Time) ([]Artifact, error)
	Name() string
}

// ParseStager maps "memory" or "disk" to a Stager, tempDir is only used by disk
func ParseStager(s, tempDir string) (Stager, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "memory":
		return MemoryStager{}, nil
	case "disk":
		return DiskStager{Dir: tempDir}, nil
	default:
		return nil, perr.InvalidArgf("unknown stager %q", s)
	}
}

// MemoryStager packages everything in memory
type MemoryStager struct{}

// Name implements Stager
func (MemoryStager) Name() string { return "memory" }

// Stage implements Stager
func (MemoryStager) Stage(ctx context.Context, chunks []Artifact, archiveName string, modTime time.Time) ([]Artifact, error) {
	if err := canceled(ctx); err != nil {
		return nil, err
	}
	if archiveName == "" {
		return chunks, nil
	}
	a, err := ArchiveBytes(archiveName, chunks, modTime)
	if err != nil {
		return nil, err
	}
	return []Artifact{a}, nil
}

// filesystem seams, swapped in tests to force failures
var (
	mkdirTemp  = os.MkdirTemp
	removeAll  = os.RemoveAll
	writeFile  = os.WriteFile
	readFile   = os.ReadFile
	createFile = os.Create
)

// DiskStager writes chunk files (and the archive) into a private temp dir,
// reads the results back and removes the dir before returning
type DiskStager struct {
	// Dir is the parent for per-call temp dirs, empty means os.TempDir()
	Dir string
}

// Name implements Stager
func (DiskStager) Name() string { return "disk" }

// Stage implements Stager
func (d DiskStager) Stage(ctx context.Context, chunks []Artifact, archiveName string, modTime time.Time) (out []Artifact, err error) {
	dir, err := mkdirTemp(d.Dir, "csvsplit-"+uuid.NewString()+"-*")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "create staging dir")
	}
	defer func() {
		if rerr := removeAll(dir); rerr != nil {
			logger.Named("splitter").Error().Err(rerr).Str("dir", dir).Msg("staging dir cleanup failed")
			if err == nil {
				out, err = nil, perr.Wrap(rerr, perr.ErrorCodeIO, "remove staging dir")
			}
		}
	}()

	paths := make([]string, len(chunks))
	for i, c := range chunks {
		if err := canceled(ctx); err != nil {
			return nil, err
		}
		p := filepath.Join(dir, filepath.Base(c.Name))
		if err := writeFile(p, c.Data, 0o600); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeIO, "stage %s", c.Name)
		}
		paths[i] = p
	}

	staged := make([]Artifact, len(chunks))
	for i, p := range paths {
		b, err := readFile(p)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read staged %s", chunks[i].Name)
		}
		staged[i] = Artifact{Name: chunks[i].Name, Data: b}
	}
	if archiveName == "" {
		return staged, nil
	}

	zp := filepath.Join(dir, filepath.Base(archiveName))
	f, err := createFile(zp)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "create staged archive")
	}
	if err := Archive(f, staged, modTime); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "close staged archive")
	}
	b, err := readFile(zp)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "read staged archive")
	}
	return []Artifact{{Name: archiveName, Data: b}}, nil
}
