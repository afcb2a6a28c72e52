package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		hex  []byte
		want int32
	}{
		{"zero", []byte{0x00}, 0},
		{"one", []byte{0x01}, 1},
		{"max one byte", []byte{0x7f}, 127},
		{"128", []byte{0x80, 0x01}, 128},
		{"255", []byte{0xff, 0x01}, 255},
		{"25565", []byte{0xdd, 0xc7, 0x01}, 25565},
		{"2097151", []byte{0xff, 0xff, 0x7f}, 2097151},
		{"max int32", []byte{0xff, 0xff, 0xff, 0xff, 0x07}, 2147483647},
		{"minus one", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, -1},
		{"min int32", []byte{0x80, 0x80, 0x80, 0x80, 0x08}, -2147483648},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadVarInt(bytes.NewReader(tt.hex))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var buf bytes.Buffer
			require.NoError(t, WriteVarInt(&buf, tt.want))
			assert.Equal(t, tt.hex, buf.Bytes())
			assert.Equal(t, len(tt.hex), VarIntSize(tt.want))
		})
	}
}

func TestVarIntOverlong(t *testing.T) {
	// Six continuation bytes: never terminates within the i32 width.
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := ReadVarInt(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrVarIntTooBig)
}

func TestVarLongRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		hex  []byte
		want int64
	}{
		{"max int64", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, 9223372036854775807},
		{"min int64", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, -9223372036854775808},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadVarLong(bytes.NewReader(tt.hex))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var buf bytes.Buffer
			require.NoError(t, WriteVarLong(&buf, tt.want))
			assert.Equal(t, tt.hex, buf.Bytes())
			assert.Equal(t, len(tt.hex), VarLongSize(tt.want))
		})
	}
}

func TestVarLongOverlong(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := ReadVarLong(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrVarLongTooBig)
}

func TestVarIntAnyValueRoundTrips(t *testing.T) {
	values := []int32{0, 1, -1, 42, -42, 1 << 20, -(1 << 20), 2147483647, -2147483648}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		assert.Equal(t, VarIntSize(v), buf.Len())
		got, err := ReadVarInt(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
