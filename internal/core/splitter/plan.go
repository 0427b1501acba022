package splitter

import (
	"fmt"
	"strings"

	perr "csvsplit/internal/platform/errors"
)

// CountPolicy decides how many chunks a table of n rows produces
type CountPolicy uint8

const (
	// CountLegacy is rows/size + 1. When rows divide evenly by size the last
	// chunk is header only. This is the historical behavior and the default
	CountLegacy CountPolicy = iota

	// CountCeil is ceil(rows/size), never less than one chunk
	CountCeil
)

// String returns the config spelling of the policy
func (p CountPolicy) String() string {
	switch p {
	case CountLegacy:
		return "legacy"
	case CountCeil:
		return "ceil"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseCountPolicy parses "legacy" or "ceil" (case-insensitive, empty means legacy)
func ParseCountPolicy(s string) (CountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return CountLegacy, nil
	case "ceil":
		return CountCeil, nil
	default:
		return 0, perr.InvalidArgf("unknown count policy %q", s)
	}
}

// ChunkCount returns the number of chunks for rows data rows at size rows per chunk
// size must be >= 1
func ChunkCount(rows, size int, p CountPolicy) int {
	if p == CountCeil {
		n := (rows + size - 1) / size
		if n < 1 {
			return 1
		}
		return n
	}
	return rows/size + 1
}

// bounds returns the half-open row range of chunk i, clipped to rows
func bounds(i, size, rows int) (lo, hi int) {
	lo = min(i*size, rows)
	hi = min(lo+size, rows)
	return lo, hi
}

// ChunkName returns the 1-based file name for chunk index i
func ChunkName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d.csv", prefix, i+1)
}

// ArchiveName returns the archive file name for prefix
func ArchiveName(prefix string) string { return prefix + "_split_files.zip" }
