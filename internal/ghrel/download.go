package ghrel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"releasesite/internal/release"
)

// DownloadToWriter streams the content at downloadURL into w.
func (c *Client) DownloadToWriter(ctx context.Context, downloadURL string, w io.Writer) error {
	resp, err := c.open(ctx, "download asset", downloadURL, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("stream asset: %w", err)
	}
	return nil
}

// DownloadAsset writes asset to outPath. An empty outPath means the asset's
// filename in the working directory.
func (c *Client) DownloadAsset(ctx context.Context, asset release.Asset, outPath string) error {
	if asset.BrowserDownloadURL == "" {
		return fmt.Errorf("asset %q has empty browser_download_url", asset.Name)
	}
	if outPath == "" {
		name, err := asset.LocalName()
		if err != nil {
			return err
		}
		outPath = name
	}
	return WriteFile(outPath, func(w io.Writer) error {
		return c.DownloadToWriter(ctx, asset.BrowserDownloadURL, w)
	})
}

// WriteFile fills a temporary sibling of path and renames it over path once
// fill succeeds. Readers never observe a partial file.
func WriteFile(path string, fill func(w io.Writer) error) (err error) {
	if path == "" {
		return errors.New("write file: empty path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".part-*")
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := fill(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("write file: sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write file: close: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("write file: rename: %w", err)
	}
	committed = true
	return nil
}
