package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	original := bytes.Repeat([]byte(`{"name":"Batman","volume":{"id":1000}}`), 200)
	compressed, err := comp.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original))

	restored, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	_, err = comp.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}
