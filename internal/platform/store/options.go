package store

import "csvsplit/internal/platform/logger"

// Option adjusts the Store before any backend is dialed
type Option func(*Store) error

// WithLogger gives the backends a logger, query tracing included
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}
