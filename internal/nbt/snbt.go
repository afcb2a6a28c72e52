package nbt

import (
	"strconv"
	"strings"
)

// SNBT renders tree as stringified NBT: primitives as decimal, byte/int/
// long arrays with their B;/I;/L; prefix, strings double-quoted without
// escape handling, compounds and lists comma-separated with JSON-like
// braces/brackets. This matches the informal grammar Minecraft's /data and
// /give commands accept, not a strict JSON document.
func SNBT(tree Tree) string {
	var b strings.Builder
	writeSNBT(&b, tree)
	return b.String()
}

func writeSNBT(b *strings.Builder, t Tree) {
	switch t.Type {
	case TagEnd:
		// nothing to render
	case TagByte:
		b.WriteString(strconv.FormatInt(int64(t.Byte), 10))
		b.WriteByte('b')
	case TagShort:
		b.WriteString(strconv.FormatInt(int64(t.Short), 10))
		b.WriteByte('s')
	case TagInt:
		b.WriteString(strconv.FormatInt(int64(t.Int), 10))
	case TagLong:
		b.WriteString(strconv.FormatInt(t.Long, 10))
		b.WriteByte('L')
	case TagFloat:
		b.WriteString(strconv.FormatFloat(float64(t.Float), 'g', -1, 32))
		b.WriteByte('f')
	case TagDouble:
		b.WriteString(strconv.FormatFloat(t.Double, 'g', -1, 64))
		b.WriteByte('d')
	case TagByteArray:
		b.WriteString("[B;")
		for i, v := range t.ByteArray {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(int8(v)), 10))
			b.WriteByte('B')
		}
		b.WriteByte(']')
	case TagString:
		b.WriteByte('"')
		b.WriteString(t.Str)
		b.WriteByte('"')
	case TagList:
		b.WriteByte('[')
		for i, item := range t.List {
			if i > 0 {
				b.WriteByte(',')
			}
			item.Type = t.ListElem
			writeSNBT(b, item)
		}
		b.WriteByte(']')
	case TagCompound:
		b.WriteByte('{')
		for i, e := range t.Compound {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(e.Key)
			b.WriteByte(':')
			writeSNBT(b, e.Value)
		}
		b.WriteByte('}')
	case TagIntArray:
		b.WriteString("[I;")
		for i, v := range t.IntArray {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(v), 10))
		}
		b.WriteByte(']')
	case TagLongArray:
		b.WriteString("[L;")
		for i, v := range t.LongArray {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte('L')
		}
		b.WriteByte(']')
	}
}
