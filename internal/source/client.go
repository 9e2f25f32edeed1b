package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "cheatsheets/internal/errors"
)

// maxErrorBody bounds how much of a failed response is quoted in errors.
const maxErrorBody = 512

// Client fetches cheatsheet markdown and the icon directory listing from the
// upstream repository.
type Client struct {
	BaseURL    string
	IconDirURL string
	UserAgent  string
	client     *http.Client
}

// NewClient creates a new source client. A zero timeout leaves requests bound
// only by their context.
func NewClient(baseURL, iconDirURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		IconDirURL: iconDirURL,
		UserAgent:  userAgent,
		client:     &http.Client{Timeout: timeout},
	}
}

// DocumentURL returns the raw markdown URL for id.
func (c *Client) DocumentURL(id string) string {
	return fmt.Sprintf("%s/%s.md", c.BaseURL, url.PathEscape(id))
}

// FetchDocument downloads the markdown source of a cheatsheet.
// Transport failures and non-2xx responses wrap ErrFetch.
func (c *Client) FetchDocument(ctx context.Context, id string) (string, error) {
	body, err := c.get(ctx, c.DocumentURL(id), "text/plain")
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFetch, err)
	}
	return string(body), nil
}

// ListIcons downloads the icon directory listing.
// Transport failures and non-2xx responses wrap ErrDirectory.
func (c *Client) ListIcons(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, c.IconDirURL, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDirectory, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("GET %s: bad status %d: %s", target, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
