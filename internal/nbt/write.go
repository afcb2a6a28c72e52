package nbt

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrLengthOverflow is returned when an array length does not fit the
// destination i32 length field on write (a negative length written from a
// slice longer than math.MaxInt32 elements, which cannot happen on real
// in-memory data but is checked defensively).
var ErrLengthOverflow = errors.New("nbt: array length overflow")

// Write emits tree as a named root tag: tag byte, u16-length-prefixed name,
// then the recursive payload.
func Write(w io.Writer, tree Tree) error {
	if err := writeByte(w, byte(tree.Type)); err != nil {
		return err
	}
	if tree.Type == TagEnd {
		return nil
	}
	if err := writeNameString(w, tree.Name); err != nil {
		return err
	}
	return writeValue(w, tree)
}

func writeValue(w io.Writer, tree Tree) error {
	switch tree.Type {
	case TagByte:
		return writeByte(w, byte(tree.Byte))
	case TagShort:
		return writeInt16(w, tree.Short)
	case TagInt:
		return writeInt32(w, tree.Int)
	case TagLong:
		return writeInt64(w, tree.Long)
	case TagFloat:
		return writeInt32(w, int32(math.Float32bits(tree.Float)))
	case TagDouble:
		return writeInt64(w, int64(math.Float64bits(tree.Double)))
	case TagByteArray:
		if len(tree.ByteArray) > math.MaxInt32 {
			return ErrLengthOverflow
		}
		if err := writeInt32(w, int32(len(tree.ByteArray))); err != nil {
			return err
		}
		_, err := w.Write(tree.ByteArray)
		return err
	case TagString:
		return writeNameString(w, tree.Str)
	case TagList:
		return writeList(w, tree)
	case TagCompound:
		return writeCompound(w, tree)
	case TagIntArray:
		if len(tree.IntArray) > math.MaxInt32 {
			return ErrLengthOverflow
		}
		if err := writeInt32(w, int32(len(tree.IntArray))); err != nil {
			return err
		}
		for _, v := range tree.IntArray {
			if err := writeInt32(w, v); err != nil {
				return err
			}
		}
		return nil
	case TagLongArray:
		if len(tree.LongArray) > math.MaxInt32 {
			return ErrLengthOverflow
		}
		if err := writeInt32(w, int32(len(tree.LongArray))); err != nil {
			return err
		}
		for _, v := range tree.LongArray {
			if err := writeInt64(w, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func writeList(w io.Writer, tree Tree) error {
	elem := tree.ListElem
	if len(tree.List) == 0 && elem == 0 {
		elem = TagEnd
	}
	if err := writeByte(w, byte(elem)); err != nil {
		return err
	}
	if len(tree.List) > math.MaxInt32 {
		return ErrLengthOverflow
	}
	if err := writeInt32(w, int32(len(tree.List))); err != nil {
		return err
	}
	for _, item := range tree.List {
		item.Type = elem
		if err := writeValue(w, item); err != nil {
			return err
		}
	}
	return nil
}

func writeCompound(w io.Writer, tree Tree) error {
	for _, e := range tree.Compound {
		if err := writeByte(w, byte(e.Value.Type)); err != nil {
			return err
		}
		if err := writeNameString(w, e.Key); err != nil {
			return err
		}
		if err := writeValue(w, e.Value); err != nil {
			return err
		}
	}
	return writeByte(w, byte(TagEnd))
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeInt16(w io.Writer, v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	_, err := w.Write(buf[:])
	return err
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func writeInt64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func writeNameString(w io.Writer, s string) error {
	b := []byte(s)
	if len(b) > math.MaxUint16 {
		return ErrLengthOverflow
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(b)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
