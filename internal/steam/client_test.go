package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNickname(t *testing.T) {
	var gotPath, gotNickname, gotSession, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotNickname = r.PostForm.Get("nickname")
		gotSession = r.PostForm.Get("sessionid")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticCredentials{Token: "tok123"})

	err := client.SetNickname(context.Background(), "76561198000000001", "[T] Alice & Bob")
	require.NoError(t, err)

	assert.Equal(t, "/profiles/76561198000000001/ajaxsetnickname/", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "[T] Alice & Bob", gotNickname, "nickname must survive URL encoding")
	assert.Equal(t, "tok123", gotSession)
}

func TestSetNickname_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticCredentials{Token: "tok"})

	err := client.SetNickname(context.Background(), "76561198000000001", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestSetNickname_NoSession(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticCredentials{})

	err := client.SetNickname(context.Background(), "76561198000000001", "Alice")
	require.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, calls, "no request may be sent without a session token")
}

func TestClearNickname_SendsEmptyNickname(t *testing.T) {
	var gotNickname string
	var hadNicknameField bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotNickname = r.PostForm.Get("nickname")
		_, hadNicknameField = r.PostForm["nickname"]
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticCredentials{Token: "tok"})

	require.NoError(t, client.ClearNickname(context.Background(), "76561198000000001"))
	assert.True(t, hadNicknameField, "clear must still carry the nickname field")
	assert.Empty(t, gotNickname)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", nil, StaticCredentials{Token: "tok"})

	assert.Equal(t, DefaultBaseURL, client.base)
	assert.NotNil(t, client.http)

	client.SetBaseURL("https://example.test/")
	assert.Equal(t, "https://example.test", client.base, "trailing slash is trimmed")
}
