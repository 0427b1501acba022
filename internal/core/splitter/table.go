package splitter

import (
	"bytes"
	"encoding/csv"
	stderrs "errors"
	"io"
	"unicode/utf8"

	perr "csvsplit/internal/platform/errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a parsed CSV document where every cell is an opaque string
// every row holds exactly len(Header) cells
type Table struct {
	Header []string
	Rows   [][]string
}

// Width returns the column count
func (t *Table) Width() int { return len(t.Header) }

// Len returns the number of data rows (header excluded)
func (t *Table) Len() int { return len(t.Rows) }

// readAll is a seam so tests can simulate a failing upload stream
var readAll = io.ReadAll

// Parse reads a whole CSV document into a Table
// a leading UTF-8 byte order mark is dropped, blank lines are skipped,
// short rows are padded with "" and rows wider than the header are rejected
func Parse(r io.Reader) (*Table, error) {
	raw, err := readAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "read input")
	}
	if !utf8.Valid(raw) {
		return nil, perr.Parsef("input is not valid UTF-8")
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "decode input")
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrs.Is(err, io.EOF) {
		return nil, perr.Parsef("missing header row")
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "malformed csv")
	}

	t := &Table{Header: header}
	width := len(header)
	for {
		rec, err := cr.Read()
		if stderrs.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeParse, "malformed csv")
		}
		if len(rec) > width {
			line, _ := cr.FieldPos(0)
			return nil, perr.Parsef("line %d: expected %d fields, saw %d", line, width, len(rec))
		}
		t.Rows = append(t.Rows, pad(rec, width))
	}
	return t, nil
}

// pad fills missing trailing cells with empty strings
func pad(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}
