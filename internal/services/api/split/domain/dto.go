// Package domain holds DTOs for split http and service contracts
package domain

import "time"

// SplitInput is the multipart form of a split request, the CSV itself travels as the "file" part
type SplitInput struct {
	Prefix    string `form:"prefix" json:"prefix,omitempty" validate:"omitempty,max=200,basename" example:"chunked_data"`
	ChunkSize int    `form:"chunk_size" json:"chunk_size,omitempty" validate:"omitempty,min=1" example:"200"`
	Archive   bool   `form:"archive" json:"archive,omitempty" example:"false"`
	Download  bool   `form:"download" json:"download,omitempty" example:"false"`
}

// Artifact is one output file, Content is base64 on the wire
type Artifact struct {
	Name    string `json:"name" example:"chunked_data_1.csv"`
	Size    int    `json:"size" example:"1024"`
	Content []byte `json:"content" swaggertype:"string" format:"base64"`
}

// SplitResult describes a finished split
type SplitResult struct {
	RunID     string     `json:"run_id" example:"0b6b8f1e-3c2a-4c1e-9a57-8f0f5f3b7c11"`
	Prefix    string     `json:"prefix" example:"chunked_data"`
	ChunkSize int        `json:"chunk_size" example:"200"`
	Columns   int        `json:"columns" example:"3"`
	Rows      int        `json:"rows" example:"450"`
	Chunks    int        `json:"chunks" example:"3"`
	Archive   bool       `json:"archive" example:"false"`
	Stager    string     `json:"stager" example:"memory"`
	ElapsedMs int64      `json:"elapsed_ms" example:"12"`
	Artifacts []Artifact `json:"artifacts"`
}

// RunsInput selects recent ledger entries
type RunsInput struct {
	Limit int `form:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// Run is one ledger entry, it never carries table content
type Run struct {
	ID        string    `json:"id"`
	Prefix    string    `json:"prefix"`
	ChunkSize int       `json:"chunk_size"`
	Archive   bool      `json:"archive"`
	Stager    string    `json:"stager"`
	Rows      int       `json:"rows"`
	Chunks    int       `json:"chunks"`
	BytesIn   int64     `json:"bytes_in"`
	BytesOut  int64     `json:"bytes_out"`
	Status    string    `json:"status" example:"ok"`
	ErrorCode string    `json:"error_code,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// Run statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
)
