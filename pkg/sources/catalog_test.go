package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixxy_Find(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"titleId":"abc123","name":"Catalog Title","region":"USA"}]`))
	}))
	defer server.Close()

	titles, err := NewPixxy(server.URL, time.Second).Find(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "ABC123", titles[0].ID)
	assert.Equal(t, "Catalog Title", titles[0].Name)
	assert.Equal(t, "USA", titles[0].Region)
}

func TestPixxy_FindEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	titles, err := NewPixxy(server.URL, time.Second).Find(context.Background(), "nothing")
	assert.NoError(t, err)
	assert.Empty(t, titles)
}

func TestPixxy_FetchPacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphicpacks", r.URL.Path)
		w.Write([]byte(`[
			{"id":"p1","titleId":"00050000101c9500","name":"4K"},
			{"id":"p2","titleId":"00050000101C9500","name":"60FPS"}
		]`))
	}))
	defer server.Close()

	packs, err := NewPixxy(server.URL, time.Second).FetchPacks(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, "00050000101C9500", packs[0].TitleID)
	assert.Equal(t, "60FPS", packs[1].Name)
}

func TestPixxy_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewPixxy(server.URL, time.Second).Find(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestNewPixxyDefaults(t *testing.T) {
	p := NewPixxy("", time.Second)
	assert.Equal(t, DefaultAPIBaseURL+"titles", p.api.URL("titles"))
}
