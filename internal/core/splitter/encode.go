package splitter

import (
	"bytes"
	"encoding/csv"

	perr "csvsplit/internal/platform/errors"
)

// Encode serializes header and rows as CSV text, header first
// values are written verbatim and quoted only where CSV requires it
func Encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	write := func(rec []string) error {
		// a lone empty cell would encode as a blank line, which readers skip
		if len(rec) == 1 && rec[0] == "" {
			w.Flush()
			buf.WriteString("\"\"\n")
			return w.Error()
		}
		return w.Write(rec)
	}

	if err := write(header); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode header")
	}
	for _, rec := range rows {
		if err := write(rec); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode flush")
	}
	return buf.Bytes(), nil
}
