package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_URL(t *testing.T) {
	api := NewAPIWithTimeout("http://api.pixxy.in/", time.Second)
	assert.Equal(t, "http://api.pixxy.in/titles", api.URL("titles"))
	assert.Equal(t, "http://api.pixxy.in/titles", api.URL("/titles"))
	assert.Equal(t, "http://api.pixxy.in/", api.URL(""))
}

func TestAPI_Get(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"ABC"}]`))
	}))
	defer server.Close()

	var out []struct {
		ID string `json:"id"`
	}
	err := NewAPIWithTimeout(server.URL, time.Second).Get(context.Background(), "titles", url.Values{"q": {"abc"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", gotQuery)
	require.Len(t, out, 1)
	assert.Equal(t, "ABC", out[0].ID)
}

func TestAPI_GetErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		var out []string
		err := NewAPIWithTimeout(server.URL, time.Second).Get(context.Background(), "", nil, &out)
		assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		var out []string
		err := NewAPIWithTimeout(server.URL, time.Second).Get(context.Background(), "", nil, &out)
		assert.Equal(t, errors.CodeSchemaFailed, errors.GetCode(err))
	})

	t.Run("network", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := server.URL
		server.Close()

		var out []string
		err := NewAPIWithTimeout(addr, time.Second).Get(context.Background(), "", nil, &out)
		assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
	})
}
