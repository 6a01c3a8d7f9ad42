package fsops_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"htmm/internal/domain"
	"htmm/internal/fsops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "mod.jar")

	var lastProgress fsops.DownloadProgress
	d := fsops.NewDownloader(nil)
	final, err := d.Download(context.Background(), server.URL, dest, func(p fsops.DownloadProgress) {
		lastProgress = p
	})
	require.NoError(t, err)
	assert.Equal(t, dest, final)
	assert.Equal(t, int64(9), lastProgress.Downloaded)

	data, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))

	// No temp file left behind
	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloader_Download_Collision(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "mod.jar")
	writeFile(t, dest, "existing")

	d := fsops.NewDownloader(nil)
	final, err := d.Download(context.Background(), server.URL, dest, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mod (1).jar"), final)
}

func TestDownloader_Download_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := fsops.NewDownloader(nil)
	_, err := d.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "mod.jar"), nil)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}
