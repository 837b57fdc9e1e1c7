package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nowhitestar/process-builder-data/internal/config"
)

// AvatarFetcher fetches a profile image addressed by social-media handle.
type AvatarFetcher interface {
	Fetch(ctx context.Context, handle string) ([]byte, error)
}

// UnavatarClient resolves avatars through the public unavatar.io proxy.
type UnavatarClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUnavatarClient(cfg config.Config) *UnavatarClient {
	return &UnavatarClient{
		baseURL:    strings.TrimRight(cfg.UnavatarBaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}
}

func (c *UnavatarClient) Fetch(ctx context.Context, handle string) ([]byte, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, errors.New("empty handle")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/twitter/"+url.PathEscape(handle), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unavatar status %d for %s", resp.StatusCode, handle)
	}
	return io.ReadAll(resp.Body)
}
