package wire

import (
	"io"

	"emberd/internal/arena"
)

// ReadString reads a VarInt-length-prefixed UTF-8 byte string. maxLen bounds
// the accepted byte count (the vanilla client/server cap is 32767 UTF-16
// code units, at most 3 UTF-8 bytes each); pass a negative maxLen to accept any
// nonnegative length. The codec does not validate UTF-8 content. The
// returned slice is a fresh heap allocation; use ReadStringArena for a
// scratch read whose backing memory a caller wants to recycle.
func ReadString(r io.Reader, maxLen int) ([]byte, error) {
	n, err := readStringLen(r, maxLen)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadStringArena reads a VarInt-length-prefixed UTF-8 byte string the same
// way ReadString does, but carves its backing buffer out of a, rather than
// the heap. The returned slice is only valid until a's next Reset; a caller
// that needs the bytes to outlive the current tick must copy them out first.
func ReadStringArena(r io.Reader, maxLen int, a *arena.Arena) ([]byte, error) {
	n, err := readStringLen(r, maxLen)
	if err != nil {
		return nil, err
	}
	buf := a.Alloc(n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readStringLen(r io.Reader, maxLen int) (int, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReader{r: r}
	}
	n, err := ReadVarInt(br)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeLength
	}
	if maxLen >= 0 && int(n) > maxLen {
		return 0, ErrStringTooLong
	}
	return int(n), nil
}

// WriteString writes b as a VarInt-length-prefixed byte string.
func WriteString(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// StringSize returns the encoded size of b as a length-prefixed string.
func StringSize(b []byte) int {
	return len(b) + VarIntSize(int32(len(b)))
}

// byteReader adapts an io.Reader lacking ReadByte, reading one byte at a
// time. Used only for the rare case a caller hands ReadString a bare reader;
// bufio.Reader (which already implements io.ByteReader) is preferred in the
// hot path.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(b.r, b.buf[:])
	return b.buf[0], err
}
