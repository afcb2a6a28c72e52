package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrFrameTooLarge is returned when a declared frame length exceeds the
// caller-supplied cap, guarding against a hostile or corrupt peer causing an
// unbounded allocation.
var ErrFrameTooLarge = errors.New("wire: frame length exceeds limit")

// ErrUnexpectedFrameEOF is returned by ReadFrame when the stream ends
// before the frame's declared length has been read, or when the frame is
// too short to hold its packet-id VarInt.
var ErrUnexpectedFrameEOF = errors.New("wire: frame ended before declared content was read")

// FrameReader is the minimal interface ReadFrame needs: a byte-at-a-time
// reader for the VarInt length prefix, and a bulk reader for the payload.
// *bufio.Reader satisfies this.
type FrameReader interface {
	io.Reader
	io.ByteReader
}

// Frame is one length-prefixed packet: an already-decoded packet
// identifier and a bounded reader over exactly the declared payload bytes.
// Any bytes left unread in Body when the caller is done decoding are
// leftover trailing data and are simply discarded along with the Frame.
type Frame struct {
	ID   int32
	Body *bytes.Reader
}

// ReadFrame reads one length-prefixed frame: a VarInt byte count for the
// remainder, then exactly that many bytes, from which the packet-id VarInt
// is decoded first. maxLen bounds the accepted frame length; pass a
// negative value to accept any nonnegative length.
//
// Because the whole frame is buffered up front, a decoder that reads past
// where the frame actually ends (the framing-resync scenario: a declared
// length longer than the real payload) simply hits io.EOF against the
// bounded buffer rather than stealing bytes from the next frame - the next
// ReadFrame call always starts exactly where this one's declared length
// ended.
func ReadFrame(r FrameReader, maxLen int) (*Frame, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrNegativeLength
	}
	if maxLen >= 0 && int(length) > maxLen {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedFrameEOF, err)
		}
		return nil, err
	}
	body := bytes.NewReader(buf)
	id, err := ReadVarInt(body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrUnexpectedFrameEOF
		}
		return nil, err
	}
	return &Frame{ID: id, Body: body}, nil
}

// WriteFrame writes the frame-length VarInt, the packet-id VarInt, and
// payload, in that order, as a single whole write. Per spec, outbound
// packets are never partially written or coalesced across packet
// boundaries.
func WriteFrame(w io.Writer, id int32, payload []byte) error {
	idSize := VarIntSize(id)
	length := idSize + len(payload)

	buf := make([]byte, 0, VarIntSize(int32(length))+length)
	out := bytes.NewBuffer(buf)
	if err := WriteVarInt(out, int32(length)); err != nil {
		return err
	}
	if err := WriteVarInt(out, id); err != nil {
		return err
	}
	out.Write(payload)

	_, err := w.Write(out.Bytes())
	return err
}
