package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Endpoint constants
const (
	DefaultBaseURL = "https://steamcommunity.com"

	nicknamePathFormat = "/profiles/%s/ajaxsetnickname/"
	friendsPathFormat  = "/profiles/%s/friends/"
	vanityPathFormat   = "/id/%s?xml=1"

	defaultRequestTimeout = 15 * time.Second
)

// Client issues requests against the community service. All calls are
// sequential by construction; the client itself holds no queue.
type Client struct {
	mu    sync.RWMutex
	base  string
	http  *http.Client
	creds CredentialProvider
}

// NewClient creates a client for the given base URL. A nil httpClient gets a
// default with a request timeout.
func NewClient(base string, httpClient *http.Client, creds CredentialProvider) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  httpClient,
		creds: creds,
	}
}

// SetBaseURL switches the endpoint base URL
func (c *Client) SetBaseURL(base string) {
	if base == "" {
		base = DefaultBaseURL
	}
	c.mu.Lock()
	c.base = strings.TrimRight(base, "/")
	c.mu.Unlock()
}

// SetCredentials switches the credential provider
func (c *Client) SetCredentials(creds CredentialProvider) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

// SetNickname assigns a nickname to the given identifier. An empty nickname
// clears the assignment. Success is any 2xx status; the response body is not
// interpreted.
func (c *Client) SetNickname(ctx context.Context, steamID, nickname string) error {
	c.mu.RLock()
	base, creds := c.base, c.creds
	c.mu.RUnlock()

	session, err := creds.SessionID(ctx)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	form := url.Values{}
	form.Set("nickname", nickname)
	form.Set("sessionid", session)

	endpoint := base + fmt.Sprintf(nicknamePathFormat, url.PathEscape(steamID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build nickname request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("set nickname for %s: %w", steamID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("set nickname for %s: unexpected status %s", steamID, resp.Status)
	}
	return nil
}

// ClearNickname removes the nickname assigned to the given identifier
func (c *Client) ClearNickname(ctx context.Context, steamID string) error {
	return c.SetNickname(ctx, steamID, "")
}

// get issues a GET against base+path and returns the response on 2xx.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	c.mu.RLock()
	base := c.base
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		drainAndClose(resp.Body)
		return nil, fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	return resp, nil
}

// drainAndClose empties the body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
