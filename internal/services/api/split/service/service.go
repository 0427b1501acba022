// Package service contains split workflows
package service

import (
	"bytes"
	"context"
	"time"

	"csvsplit/internal/core/splitter"
	"csvsplit/internal/modkit/repokit"
	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/logger"
	"csvsplit/internal/services/api/split/domain"
	"csvsplit/internal/services/api/split/repo"

	"github.com/google/uuid"
)

// Service defines the split service contract
type Service interface {
	domain.ServicePort
}

// Config holds request defaults and limits
type Config struct {
	DefaultPrefix    string
	DefaultChunkSize int
	MaxChunkSize     int
	Count            splitter.CountPolicy
	Stager           splitter.Stager
}

// Svc implements the split service
type Svc struct {
	cfg    Config
	runs   repo.Repo      // nil when postgres is off
	events repo.EventSink // nil when clickhouse is off
}

// seams
var (
	now   = time.Now
	newID = func() string { return uuid.NewString() }
)

// New constructs a split service, db and events are optional
func New(cfg Config, db repokit.TxRunner, binder repokit.Binder[repo.Repo], events repo.EventSink) *Svc {
	if cfg.DefaultPrefix == "" {
		panic("split.Service requires a default prefix")
	}
	if cfg.DefaultChunkSize < 1 {
		panic("split.Service requires a positive default chunk size")
	}
	if cfg.Stager == nil {
		cfg.Stager = splitter.MemoryStager{}
	}
	s := &Svc{cfg: cfg, events: events}
	if db != nil {
		if binder == nil {
			panic("split.Service requires a non nil Repo binder when a TxRunner is given")
		}
		s.runs = binder.Bind(db)
	}
	return s
}

// Split partitions csv and returns the artifacts, the run is recorded when stores are on
func (s *Svc) Split(ctx context.Context, in domain.SplitInput, csv []byte) (domain.SplitResult, error) {
	prefix := in.Prefix
	if prefix == "" {
		prefix = s.cfg.DefaultPrefix
	}
	size := in.ChunkSize
	if size == 0 {
		size = s.cfg.DefaultChunkSize
	}
	if s.cfg.MaxChunkSize > 0 && size > s.cfg.MaxChunkSize {
		return domain.SplitResult{}, perr.WithField(
			perr.InvalidArgf("chunk size must be at most %d", s.cfg.MaxChunkSize), "chunk_size")
	}

	id := newID()
	start := now()
	res, err := splitter.Split(ctx, bytes.NewReader(csv), prefix, size, splitter.Options{
		Archive: in.Archive,
		Count:   s.cfg.Count,
		Stager:  s.cfg.Stager,
	})
	elapsed := now().Sub(start).Milliseconds()

	row := repo.RunRow{
		ID:        id,
		Prefix:    prefix,
		ChunkSize: size,
		Archive:   in.Archive,
		Stager:    s.cfg.Stager.Name(),
		BytesIn:   int64(len(csv)),
		Status:    domain.StatusOK,
		ElapsedMs: elapsed,
		CreatedAt: start.UTC(),
	}
	if err != nil {
		row.Status = domain.StatusError
		row.ErrorCode = perr.CodeOf(err).String()
	} else {
		row.Rows = res.Rows
		row.Chunks = res.Chunks
		row.BytesOut = int64(res.Bytes())
	}
	s.record(ctx, row)

	log := logger.C(ctx)
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("run_id", id).
		Str("prefix", prefix).
		Int("chunk_size", size).
		Int("rows", row.Rows).
		Int("chunks", row.Chunks).
		Bool("archive", in.Archive).
		Str("stager", row.Stager).
		Int64("elapsed_ms", elapsed).
		Msg("split")

	if err != nil {
		return domain.SplitResult{}, err
	}

	out := domain.SplitResult{
		RunID:     id,
		Prefix:    prefix,
		ChunkSize: size,
		Columns:   res.Columns,
		Rows:      res.Rows,
		Chunks:    res.Chunks,
		Archive:   in.Archive,
		Stager:    row.Stager,
		ElapsedMs: elapsed,
		Artifacts: make([]domain.Artifact, 0, len(res.Artifacts)),
	}
	for _, a := range res.Artifacts {
		out.Artifacts = append(out.Artifacts, domain.Artifact{Name: a.Name, Size: a.Size(), Content: a.Data})
	}
	return out, nil
}

// record writes the run to the ledger and the event sink, failures are logged only
func (s *Svc) record(ctx context.Context, row repo.RunRow) {
	ctx = context.WithoutCancel(ctx)
	if s.runs != nil {
		if err := s.runs.Insert(ctx, row); err != nil {
			logger.C(ctx).Error().Err(err).Str("run_id", row.ID).Msg("split ledger write failed")
		}
	}
	if s.events != nil {
		if err := s.events.Record(ctx, row); err != nil {
			logger.C(ctx).Error().Err(err).Str("run_id", row.ID).Msg("split event write failed")
		}
	}
}

// Runs lists recent ledger entries, newest first
func (s *Svc) Runs(ctx context.Context, in domain.RunsInput) ([]domain.Run, error) {
	if s.runs == nil {
		return nil, perr.Unavailablef("runs ledger is disabled")
	}
	rows, err := s.runs.Recent(ctx, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Run{
			ID:        r.ID,
			Prefix:    r.Prefix,
			ChunkSize: r.ChunkSize,
			Archive:   r.Archive,
			Stager:    r.Stager,
			Rows:      r.Rows,
			Chunks:    r.Chunks,
			BytesIn:   r.BytesIn,
			BytesOut:  r.BytesOut,
			Status:    r.Status,
			ErrorCode: r.ErrorCode,
			ElapsedMs: r.ElapsedMs,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
