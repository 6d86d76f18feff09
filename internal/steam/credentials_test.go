package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredentials(t *testing.T) {
	token, err := StaticCredentials{Token: "tok"}.SessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = StaticCredentials{}.SessionID(context.Background())
	require.ErrorIs(t, err, ErrNoSession)

	_, err = StaticCredentials{Token: "   "}.SessionID(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSessionCredentials_HarvestsPageGlobal(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(`<html><script>g_sessionID = "abcdef123456";</script></html>`))
	}))
	defer srv.Close()

	creds := NewSessionCredentials(srv.URL, srv.Client())

	token, err := creds.SessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcdef123456", token)

	// Second call is served from cache
	token, err = creds.SessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcdef123456", token)
	assert.Equal(t, 1, fetches)

	// Invalidate forces a new harvest
	creds.Invalidate()
	_, err = creds.SessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestSessionCredentials_CookieFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "cookie-token"})
		_, _ = w.Write([]byte(`<html>no page global here</html>`))
	}))
	defer srv.Close()

	// Build a jar-backed client pointed at the test server
	creds := NewSessionCredentials(srv.URL, nil)
	creds.http.Transport = srv.Client().Transport

	token, err := creds.SessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", token)
}

func TestSessionCredentials_NoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>signed out</html>`))
	}))
	defer srv.Close()

	creds := NewSessionCredentials(srv.URL, nil)
	creds.http.Transport = srv.Client().Transport

	_, err := creds.SessionID(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}
