package schedpdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Save runs export into memory and, only if it succeeds, writes the
// document to dir under Result.FileName. The file is written under a
// temporary name and renamed into place, so a failed export or write leaves
// no partial file:
//
//	path, res, err := schedpdf.Save(dir, func(w io.Writer) (*schedpdf.Result, error) {
//	    return exp.ExportAllClasses(ctx, w, slots, teachers, true, cfg, nil)
//	})
func Save(dir string, export func(io.Writer) (*Result, error)) (string, *Result, error) {
	var buf bytes.Buffer
	res, err := export(&buf)
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("schedpdf: creating output directory: %w", err)
	}
	path := filepath.Join(dir, res.FileName)
	tmp, err := os.CreateTemp(dir, ".schedpdf-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("schedpdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", nil, fmt.Errorf("schedpdf: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", nil, fmt.Errorf("schedpdf: writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", nil, fmt.Errorf("schedpdf: %w", err)
	}
	return path, res, nil
}
