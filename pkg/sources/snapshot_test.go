package sources

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineSnapshot_DecodeBundled(t *testing.T) {
	keys, err := NewOfflineSnapshot().Decode()
	require.NoError(t, err)
	require.NotEmpty(t, keys)

	for _, key := range keys {
		assert.NotEmpty(t, key.TitleID)
		assert.NotEmpty(t, key.Key)
	}
}

func TestOfflineSnapshot_Corrupt(t *testing.T) {
	_, err := NewOfflineSnapshotFromBytes([]byte(`[{"titleID":`)).Decode()
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestOfflineSnapshot_Version(t *testing.T) {
	assert.Equal(t, SnapshotVersion, NewOfflineSnapshot().Version())
}
