package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Misconfigured(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{"API_KEY", "CONFIG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/api/buses/board?standName=Salem", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var env map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "server misconfigured", env["error"])
	}
}
