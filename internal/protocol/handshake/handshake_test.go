package handshake

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emberd/internal/arena"
	"emberd/internal/wire"
)

func TestReadHandshake(t *testing.T) {
	var payload bytes.Buffer
	require.NoError(t, wire.WriteVarInt(&payload, 765))
	require.NoError(t, wire.WriteString(&payload, []byte("localhost")))
	require.NoError(t, wire.WriteUint16(&payload, 25565))
	require.NoError(t, wire.WriteVarInt(&payload, int32(NextStateStatus)))

	var framed bytes.Buffer
	require.NoError(t, wire.WriteFrame(&framed, PacketIDHandshake, payload.Bytes()))

	fr, err := wire.ReadFrame(bufio.NewReader(&framed), -1)
	require.NoError(t, err)

	hs, err := Read(fr, arena.New(64))
	require.NoError(t, err)
	assert.Equal(t, int32(765), hs.ProtocolVersion)
	assert.Equal(t, []byte("localhost"), hs.ServerAddress)
	assert.Equal(t, uint16(25565), hs.ServerPort)
	assert.Equal(t, NextStateStatus, hs.NextState)
}
