package cache

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{"single component", Key{"review"}, "review"},
		{"review key", Key{"review", "561507"}, "review:561507"},
		{"empty component", Key{"a", "", "b"}, "a::b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}

func TestCache_SetGetContains(t *testing.T) {
	c, err := OpenInMemory()
	require.NoError(t, err)
	defer c.Close()

	key := Key{"review", "561507"}

	found, err := c.Contains(key)
	require.NoError(t, err)
	assert.False(t, found)

	raw := json.RawMessage(`{"status":"MERGED","_number":561507}`)
	require.NoError(t, c.Set(key, raw))

	found, err = c.Contains(key)
	require.NoError(t, err)
	assert.True(t, found)

	var got json.RawMessage
	require.NoError(t, c.Get(key, &got))
	assert.JSONEq(t, string(raw), string(got))
}

func TestCache_GetMissing(t *testing.T) {
	c, err := OpenInMemory()
	require.NoError(t, err)
	defer c.Close()

	var got map[string]any
	err = c.Get(Key{"review", "1"}, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache_DistinctTuples(t *testing.T) {
	c, err := OpenInMemory()
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(Key{"review", "1"}, "first"))
	require.NoError(t, c.Set(Key{"review", "2"}, "second"))

	var first, second string
	require.NoError(t, c.Get(Key{"review", "1"}, &first))
	require.NoError(t, c.Get(Key{"review", "2"}, &second))
	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestCache_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Set(Key{"review", "42"}, map[string]string{"status": "MERGED"}))
	require.NoError(t, c.Close())

	c2, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer c2.Close()

	var got map[string]string
	require.NoError(t, c2.Get(Key{"review", "42"}, &got))
	assert.Equal(t, map[string]string{"status": "MERGED"}, got)
}

func TestOpen_RequiresDirectory(t *testing.T) {
	_, err := Open("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache directory is required")
}
