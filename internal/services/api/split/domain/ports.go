package domain

import "context"

// ServicePort defines the service contract for splits
type ServicePort interface {
	Split(ctx context.Context, in SplitInput, csv []byte) (SplitResult, error)
	Runs(ctx context.Context, in RunsInput) ([]Run, error)
}
