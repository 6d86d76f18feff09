package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// ErrNoSession is returned when no session token could be located.
var ErrNoSession = errors.New("no session token available")

// Session cookie name on the community domain.
const sessionCookieName = "sessionid"

var sessionIDPattern = regexp.MustCompile(`g_sessionID\s*=\s*"([^"]+)"`)

// CredentialProvider supplies the session token sent with every nickname
// request.
type CredentialProvider interface {
	SessionID(ctx context.Context) (string, error)
}

// StaticCredentials returns a token configured by hand in settings.
type StaticCredentials struct {
	Token string
}

// SessionID returns the configured token
func (s StaticCredentials) SessionID(context.Context) (string, error) {
	if strings.TrimSpace(s.Token) == "" {
		return "", ErrNoSession
	}
	return s.Token, nil
}

// SessionCredentials harvests the session token from the signed-in community
// session: it fetches the community front page and reads the g_sessionID
// global rendered into it, falling back to the sessionid cookie in the jar.
// The token is cached after the first successful harvest.
type SessionCredentials struct {
	base string
	http *http.Client

	mu     sync.Mutex
	cached string
}

// NewSessionCredentials creates a harvesting provider. A nil httpClient gets
// a default with a cookie jar, which the harvest requires.
func NewSessionCredentials(base string, httpClient *http.Client) *SessionCredentials {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Timeout: defaultRequestTimeout, Jar: jar}
	}
	return &SessionCredentials{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
	}
}

// SessionID returns the harvested session token
func (s *SessionCredentials) SessionID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached, nil
	}

	token, err := s.harvest(ctx)
	if err != nil {
		return "", err
	}
	s.cached = token
	return token, nil
}

// Invalidate drops the cached token so the next call harvests again.
func (s *SessionCredentials) Invalidate() {
	s.mu.Lock()
	s.cached = ""
	s.mu.Unlock()
}

func (s *SessionCredentials) harvest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/", nil)
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch session page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("fetch session page: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read session page: %w", err)
	}

	if m := sessionIDPattern.FindSubmatch(body); m != nil {
		return string(m[1]), nil
	}

	// Page global absent, try the cookie set by the service.
	if s.http.Jar != nil {
		u, err := url.Parse(s.base + "/")
		if err == nil {
			for _, cookie := range s.http.Jar.Cookies(u) {
				if cookie.Name == sessionCookieName && cookie.Value != "" {
					return cookie.Value, nil
				}
			}
		}
	}

	return "", ErrNoSession
}
