package orbis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"htmm/internal/domain"
)

const (
	defaultBaseURL = "https://api.orbis.place"
	siteURL        = "https://orbis.place"
)

// Client wraps the Orbis REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Orbis API client
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
}

// SetBaseURL overrides the API base URL (tests and mirrors).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// doRequest performs an HTTP request against the Orbis API
func (c *Client) doRequest(ctx context.Context, method, path string, result interface{}) (err error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	// The API rejects requests without a browser-like origin
	req.Header.Set("Origin", siteURL)
	req.Header.Set("Referer", siteURL+"/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: executing request: %v", domain.ErrCatalogUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: resource not found", domain.ErrModNotFound)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return fmt.Errorf("%w: download not available for this resource", domain.ErrDistributionRestricted)
	}

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 10*1024))
		if readErr != nil {
			return fmt.Errorf("%w: API error (status %d); reading body: %v", domain.ErrCatalogUnavailable, resp.StatusCode, readErr)
		}
		return fmt.Errorf("%w: API error (status %d): %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// SearchResources searches published mod resources
func (c *Client) SearchResources(ctx context.Context, query string, page, limit int) ([]Resource, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("type", "MOD")
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if query != "" {
		params.Set("search", query)
	}

	path := "/resources?" + params.Encode()

	var resp PaginatedResponse[[]Resource]
	if err := c.doRequest(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, fmt.Errorf("searching resources: %w", err)
	}
	return resp.Data, nil
}

// GetResource fetches a single resource by ID
func (c *Client) GetResource(ctx context.Context, resourceID string) (*Resource, error) {
	path := "/resources/" + url.PathEscape(resourceID)

	var resource Resource
	if err := c.doRequest(ctx, http.MethodGet, path, &resource); err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	return &resource, nil
}

// GetVersions fetches all published versions of a resource, newest first
func (c *Client) GetVersions(ctx context.Context, resourceID string) ([]Version, error) {
	path := "/resources/" + url.PathEscape(resourceID) + "/versions"

	var versions []Version
	if err := c.doRequest(ctx, http.MethodGet, path, &versions); err != nil {
		return nil, fmt.Errorf("getting versions: %w", err)
	}
	return versions, nil
}
