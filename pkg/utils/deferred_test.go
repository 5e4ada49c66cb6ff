package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_Flush(t *testing.T) {
	var d DeferredWriter

	buf := []byte("first\n")
	_, err := d.Write(buf)
	require.NoError(t, err)
	buf[0] = 'X' // caller reuses its buffer

	_, err = d.Write([]byte("second\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, "first\nsecond\n", out.String())
	assert.Equal(t, 0, d.Len())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String())
}
