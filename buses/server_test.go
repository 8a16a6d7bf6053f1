package buses

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjx20/tnbus-gemini/config"
)

func textUpstream(t *testing.T, text string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"`+text+`"}]}}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func restConfig(upstreamURL string, origins ...string) config.Config {
	return config.Config{
		APIKey:         "k",
		UpstreamURL:    upstreamURL,
		Backend:        config.BackendREST,
		AllowedOrigins: origins,
	}
}

func TestReloadable_SwapsUpstream(t *testing.T) {
	first := textUpstream(t, "first")
	second := textUpstream(t, "second")

	s, err := NewReloadable(context.Background(), restConfig(first, "*"))
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	defer srv.Close()

	board := url.Values{"standName": {"Erode"}}
	_, body, _ := get(t, srv, "/api/buses/board", board)
	assert.Equal(t, "first", body)

	require.NoError(t, s.Reload(context.Background(), restConfig(second, "http://app.example")))
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/buses/board?"+board.Encode(), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://app.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "second", string(b))
	assert.Equal(t, "http://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestReloadable_KeepsRouterOnError(t *testing.T) {
	s, err := NewReloadable(context.Background(), restConfig(textUpstream(t, "kept")))
	require.NoError(t, err)

	require.Error(t, s.Reload(context.Background(), restConfig("://broken")))

	srv := httptest.NewServer(s)
	defer srv.Close()
	status, body, _ := get(t, srv, "/api/buses/board", url.Values{"standName": {"Karur"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "kept", body)
}

func TestNewReloadable_Error(t *testing.T) {
	_, err := NewReloadable(context.Background(), restConfig("://broken"))
	require.Error(t, err)
}
