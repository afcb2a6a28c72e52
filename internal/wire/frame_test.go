package wire

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte("hello world")

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, 0x02, payload))

	frame, err := ReadFrame(bufio.NewReader(&buf), -1)
	require.NoError(t, err)
	assert.Equal(t, int32(0x02), frame.ID)

	got := make([]byte, frame.Body.Len())
	_, err = frame.Body.Read(got)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// TestFrameResync mirrors spec scenario 6: a declared frame length longer
// than what the decoder actually consumes must not bleed into the next
// frame, since the whole declared length is buffered up front.
func TestFrameResync(t *testing.T) {
	var buf bytes.Buffer
	// Declare a payload of 10 bytes for packet id 0x00, but only the id
	// VarInt (1 byte) plus 9 bytes of arbitrary trailing data.
	require.NoError(t, WriteFrame(&buf, 0x00, bytes.Repeat([]byte{0xAB}, 9)))
	require.NoError(t, WriteFrame(&buf, 0x01, []byte("next")))

	r := bufio.NewReader(&buf)

	first, err := ReadFrame(r, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(0x00), first.ID)
	// Decoder only reads nothing further from first.Body: leftover bytes
	// are discarded with the Frame, never touching the underlying stream.

	second, err := ReadFrame(r, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(0x01), second.ID)
	rest := make([]byte, second.Body.Len())
	_, err = second.Body.Read(rest)
	require.NoError(t, err)
	assert.Equal(t, []byte("next"), rest)
}

func TestFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, 0x00, bytes.Repeat([]byte{0x00}, 100)))

	_, err := ReadFrame(bufio.NewReader(&buf), 10)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}
