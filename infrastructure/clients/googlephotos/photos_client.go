package googlephotos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"photo-frame/domain/dto"
	"photo-frame/domain/model"
	"photo-frame/infrastructure/logger"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// ConfigLoader returns the OAuth client config used to refresh expired tokens
type ConfigLoader func() (*oauth2.Config, error)

// Client talks to the Photos Library REST API with the frame's credential
type Client struct {
	endpoint     string
	configLoader ConfigLoader

	mu     sync.Mutex
	config *oauth2.Config
}

// NewPhotosClient creates a client for endpoint (e.g. https://photoslibrary.googleapis.com/v1).
// configLoader may be nil, in which case tokens are used as-is and never refreshed.
func NewPhotosClient(endpoint string, configLoader ConfigLoader) *Client {
	return &Client{
		endpoint:     strings.TrimRight(endpoint, "/"),
		configLoader: configLoader,
	}
}

// httpClient returns an authenticated client. When the OAuth client config is
// available the token source refreshes an expired access token.
func (c *Client) httpClient(ctx context.Context, credential *model.Credential) *http.Client {
	token := credential.Token()
	if config := c.oauthConfig(); config != nil {
		return config.Client(ctx, token)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
}

// oauthConfig loads the client config once. A failed load is retried on the next call.
func (c *Client) oauthConfig() *oauth2.Config {
	if c.configLoader == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config != nil {
		return c.config
	}
	config, err := c.configLoader()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("OAuth client config unavailable; expired access tokens cannot be refreshed")
		return nil
	}
	c.config = config
	return config
}

// ListMediaItems pages through the library until n items are collected or the library is exhausted
func (c *Client) ListMediaItems(ctx context.Context, credential *model.Credential, n int) ([]model.MediaItem, error) {
	if n <= 0 {
		return nil, nil
	}
	client := c.httpClient(ctx, credential)
	items := make([]model.MediaItem, 0, n)
	req := &dto.MediaItemListRequest{}
	for len(items) < n {
		req.PageSize = min(n-len(items), dto.MaxPageSize)
		page, err := c.listPage(ctx, client, req)
		if err != nil {
			return items, err
		}
		items = append(items, page.MediaItems...)
		if page.NextPageToken == "" || len(page.MediaItems) == 0 {
			break
		}
		req.PageToken = page.NextPageToken
	}
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}

func (c *Client) listPage(ctx context.Context, client *http.Client, req *dto.MediaItemListRequest) (*dto.MediaItemListResponse, error) {
	values, err := query.Values(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media item query: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/mediaItems?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	defer resp.Body.Close()
	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	var page dto.MediaItemListResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode media items: %w", err)
	}
	return &page, nil
}

// Download opens the full-resolution bytes of item. Anything but 200 is an error.
func (c *Client) Download(ctx context.Context, credential *model.Credential, item model.MediaItem) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, item.DownloadURL(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient(ctx, credential).Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", item.Filename, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		if err := googleapi.CheckResponse(resp); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", item.Filename, err)
		}
		return nil, fmt.Errorf("failed to download %s: unexpected status %d", item.Filename, resp.StatusCode)
	}
	return resp.Body, nil
}
