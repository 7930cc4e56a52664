package loader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewResourceChecksum(t *testing.T) {
	res := NewResource("https://a.example/sdk.js", []byte("hello"), "text/javascript", SourceFetch, epoch)

	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", res.Checksum)
	assert.Equal(t, 5, res.Size())
	assert.NoError(t, res.Verify())

	res.Body = []byte("tampered")
	assert.Error(t, res.Verify())
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Get(ctx, "u")
	assert.ErrorIs(t, err, ErrCacheMiss)

	stored := NewResource("u", []byte("body"), "", SourceFetch, epoch)
	require.NoError(t, c.Set(ctx, "u", stored))

	got, err := c.Get(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, got.Source)
	assert.Equal(t, stored.Checksum, got.Checksum)
	assert.Equal(t, SourceFetch, stored.Source, "stored entry must not be mutated")

	require.NoError(t, c.Delete(ctx, "u"))
	assert.Equal(t, 0, c.Len())
}
