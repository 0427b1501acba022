package splitter

import (
	"bytes"
	"io"
	"time"

	perr "csvsplit/internal/platform/errors"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Archive writes artifacts into w as one ZIP container, entries in order
// every entry is deflated and stamped with modTime
func Archive(w io.Writer, artifacts []Artifact, modTime time.Time) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	for _, a := range artifacts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			_ = zw.Close()
			return perr.Wrapf(err, perr.ErrorCodeIO, "archive entry %s", a.Name)
		}
		if _, err := fw.Write(a.Data); err != nil {
			_ = zw.Close()
			return perr.Wrapf(err, perr.ErrorCodeIO, "archive entry %s", a.Name)
		}
	}
	if err := zw.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "finalize archive")
	}
	return nil
}

// ArchiveBytes is Archive into memory, returning a single named artifact
func ArchiveBytes(name string, artifacts []Artifact, modTime time.Time) (Artifact, error) {
	var buf bytes.Buffer
	if err := Archive(&buf, artifacts, modTime); err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: name, Data: buf.Bytes()}, nil
}

// Unarchive reads every entry of a ZIP container back into artifacts, in archive order
func Unarchive(data []byte) ([]Artifact, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "open archive")
	}
	out := make([]Artifact, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeParse, "open entry %s", f.Name)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeParse, "read entry %s", f.Name)
		}
		out = append(out, Artifact{Name: f.Name, Data: b})
	}
	return out, nil
}
