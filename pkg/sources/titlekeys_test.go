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

func TestTitleKeySite_FetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"titleID":"00050000101c9500","key":"aa"},{"titleID":"0005000010145D00","key":"bb"}]`))
	}))
	defer server.Close()

	site := NewTitleKeySite(server.URL, time.Second)
	assert.Equal(t, server.URL, site.Name())

	keys, err := site.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "00050000101c9500", keys[0].TitleID)
	assert.Equal(t, "bb", keys[1].Key)
}

func TestTitleKeySite_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := NewTitleKeySite(server.URL, time.Second).FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaFailed, errors.GetCode(err))
}

func TestTitleKeySite_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := NewTitleKeySite(server.URL, 50*time.Millisecond).FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
}

func TestNewTitleKeySiteDefaultURL(t *testing.T) {
	assert.Equal(t, DefaultTitleKeysURL, NewTitleKeySite("", time.Second).Name())
}
