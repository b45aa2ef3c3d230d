package fontload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/style"
)

// Fetch downloads a catalog font into dir as <Name>.ttf, where Locate will
// find it. The file is written to a temporary name first and renamed once
// the download is complete and validated. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, font style.CatalogFont, dir string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, font.URL, nil)
	if err != nil {
		return "", errors.FontLoad("", font.Name, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.FontLoad("", font.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.FontLoad("", font.Name, fmt.Errorf("GET %s: %s", font.URL, resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFontSize+1))
	if err != nil {
		return "", errors.FontLoad("", font.Name, err)
	}
	if len(data) > MaxFontSize {
		return "", errors.FontLoad("", font.Name, fmt.Errorf("download larger than %d bytes", MaxFontSize))
	}
	if err := Validate(data); err != nil {
		return "", errors.FontLoad("", font.Name, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, "."+font.Name+"-*.ttf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, font.Name+".ttf")
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	logging.Logger().Debug("font fetched", "font", font.Name, "path", path, "bytes", len(data))
	return path, nil
}
