// Package fontload reads TrueType fonts for use as custom style fonts and
// finds named fonts on disk.
//
// Uploaded fonts travel inside a style.Config as base64 text. Read turns a
// file into that form, Decode turns it back into font bytes, and both check
// that the bytes really are a font the PDF engine can embed.
package fontload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/style"
)

// MaxFontSize caps the size of a font file that Read accepts.
const MaxFontSize = 32 << 20

// FallbackName is the family name the embedded fallback font is registered
// under.
const FallbackName = "GoRegular"

// Fallback returns the embedded font used when no other font can be loaded.
// It covers Latin text only; Arabic glyphs drawn with it come out blank.
func Fallback() []byte {
	return goregular.TTF
}

type readResult struct {
	data []byte
	err  error
}

// Read loads a font upload. The name of the result is filename without its
// extension. Reading runs on its own goroutine so a slow or stuck reader
// does not outlive ctx; Read returns as soon as either finishes.
func Read(ctx context.Context, filename string, r io.Reader) (style.CustomFont, error) {
	name := fontName(filename)
	done := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(r, MaxFontSize+1))
		done <- readResult{data, err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		return style.CustomFont{}, errors.FontLoad("", name, ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return style.CustomFont{}, errors.FontLoad("", name, res.err)
	}
	if len(res.data) > MaxFontSize {
		return style.CustomFont{}, errors.FontLoad("", name, fmt.Errorf("file larger than %d bytes", MaxFontSize))
	}
	if err := Validate(res.data); err != nil {
		return style.CustomFont{}, errors.FontLoad("", name, err)
	}
	return style.CustomFont{Name: name, Data: base64.StdEncoding.EncodeToString(res.data)}, nil
}

// ReadFile is Read for a file on disk.
func ReadFile(ctx context.Context, path string) (style.CustomFont, error) {
	f, err := os.Open(path)
	if err != nil {
		return style.CustomFont{}, errors.FontLoad("", fontName(path), err)
	}
	defer f.Close()
	return Read(ctx, filepath.Base(path), f)
}

// Decode returns the font bytes of cf. A data URL prefix
// ("data:font/ttf;base64,") is tolerated.
func Decode(cf style.CustomFont) ([]byte, error) {
	if !cf.Present() {
		return nil, errors.FontLoad("", cf.Name, fmt.Errorf("missing name or payload"))
	}
	payload := cf.Data
	if strings.HasPrefix(payload, "data:") {
		if i := strings.IndexByte(payload, ','); i >= 0 {
			payload = payload[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, errors.FontLoad("", cf.Name, fmt.Errorf("decoding base64: %w", err))
	}
	if err := Validate(data); err != nil {
		return nil, errors.FontLoad("", cf.Name, err)
	}
	return data, nil
}

// Validate checks that data parses as a TrueType font. OpenType files with
// CFF outlines parse too but cannot be embedded, so they are rejected.
func Validate(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("not a font: %d bytes", len(data))
	}
	if bytes.HasPrefix(data, []byte("OTTO")) {
		return fmt.Errorf("CFF-based OpenType fonts are not supported")
	}
	if _, err := opentype.Parse(data); err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}
	return nil
}

// Locate finds <dir>/<name>.ttf. Lookups are case-sensitive on the name and
// accept either ".ttf" or ".TTF".
func Locate(dir, name string) (string, bool) {
	if dir == "" || name == "" {
		return "", false
	}
	for _, ext := range []string{".ttf", ".TTF"} {
		p := filepath.Join(dir, name+ext)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

func fontName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
