package fsops

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"htmm/internal/domain"
)

// DownloadProgress represents the current state of a download.
type DownloadProgress struct {
	TotalBytes int64   // Total size in bytes (0 if unknown)
	Downloaded int64   // Bytes downloaded so far
	Percentage float64 // Completion percentage (0-100)
}

// ProgressFunc is called periodically during download with progress updates.
type ProgressFunc func(DownloadProgress)

// Downloader handles HTTP file downloads with progress tracking.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a Downloader. If httpClient is nil,
// http.DefaultClient is used.
func NewDownloader(httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Downloader{httpClient: httpClient}
}

// Download streams the URL to destPath. The body is written to a ".tmp"
// sibling first and renamed into place, so a partial download is never
// visible under the destination name. If destPath already exists, a unique
// name is used; the path actually written is returned.
func (d *Downloader) Download(ctx context.Context, url, destPath string, progressFn ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", domain.ErrDownloadFailed, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", domain.ErrDownloadFailed, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("%w: creating directory: %v", domain.ErrDownloadFailed, err)
	}

	tempPath := destPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: creating file: %v", domain.ErrDownloadFailed, err)
	}
	defer func() {
		file.Close()
		os.Remove(tempPath) // no-op after successful rename
	}()

	reader := &progressReader{
		reader:     resp.Body,
		totalBytes: resp.ContentLength,
		progressFn: progressFn,
	}
	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("%w: closing file: %v", domain.ErrDownloadFailed, err)
	}

	final := UniquePath(destPath)
	if err := os.Rename(tempPath, final); err != nil {
		return "", fmt.Errorf("%w: renaming file: %v", domain.ErrDownloadFailed, err)
	}
	return final, nil
}

// progressReader wraps an io.Reader to track download progress.
type progressReader struct {
	reader     io.Reader
	totalBytes int64
	downloaded int64
	progressFn ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.downloaded += int64(n)
		if r.progressFn != nil {
			progress := DownloadProgress{
				TotalBytes: r.totalBytes,
				Downloaded: r.downloaded,
			}
			if r.totalBytes > 0 {
				progress.Percentage = float64(r.downloaded) / float64(r.totalBytes) * 100
			}
			r.progressFn(progress)
		}
	}
	return n, err
}
