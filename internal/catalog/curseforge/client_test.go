package curseforge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"htmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(nil, "test-key")
	client.SetBaseURL(server.URL)
	return client, server
}

func TestClient_GetMod(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/534982", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"data":{"id":534982,"name":"Better Foliage","slug":"better-foliage","summary":"Leaves."}}`))
	})
	defer server.Close()

	mod, err := client.GetMod(context.Background(), 534982)
	require.NoError(t, err)
	assert.Equal(t, int64(534982), mod.ID)
	assert.Equal(t, "Better Foliage", mod.Name)
}

func TestClient_GetMod_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetMod(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrModNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.GetMod(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestClient_ForbiddenWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(nil, "")
	client.SetBaseURL(server.URL)

	_, err := client.GetMod(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestClient_GetDownloadURL(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/10/files/20/download-url", r.URL.Path)
		w.Write([]byte(`{"data":"https://edge.example.com/files/mod.jar"}`))
	})
	defer server.Close()

	url, err := client.GetDownloadURL(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "https://edge.example.com/files/mod.jar", url)
}

func TestClient_GetDownloadURL_DistributionDisabled(t *testing.T) {
	// 403 on the download-url endpoint with a valid key means the author
	// opted out of third-party distribution
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	_, err := client.GetDownloadURL(context.Background(), 10, 20)
	assert.ErrorIs(t, err, domain.ErrDistributionRestricted)
}

func TestClient_GetDownloadURL_EmptyURL(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":""}`))
	})
	defer server.Close()

	_, err := client.GetDownloadURL(context.Background(), 10, 20)
	assert.ErrorIs(t, err, domain.ErrDistributionRestricted)
}

func TestClient_SearchMods(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/search", r.URL.Path)
		assert.Equal(t, "432", r.URL.Query().Get("gameId"))
		assert.Equal(t, "foliage", r.URL.Query().Get("searchFilter"))
		w.Write([]byte(`{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"pagination":{"index":0,"pageSize":20,"resultCount":2,"totalCount":2}}`))
	})
	defer server.Close()

	mods, pagination, err := client.SearchMods(context.Background(), 432, "foliage", 20, 0)
	require.NoError(t, err)
	assert.Len(t, mods, 2)
	assert.Equal(t, 2, pagination.TotalCount)
}
