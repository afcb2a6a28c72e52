package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripPrimitives(t *testing.T) {
	tests := []Tree{
		{Type: TagByte, Name: "b", Byte: -12},
		{Type: TagShort, Name: "s", Short: 1234},
		{Type: TagInt, Name: "i", Int: -987654},
		{Type: TagLong, Name: "l", Long: 1 << 40},
		{Type: TagFloat, Name: "f", Float: 3.5},
		{Type: TagDouble, Name: "d", Double: -2.25},
		{Type: TagString, Name: "str", Str: "hello"},
		{Type: TagByteArray, Name: "ba", ByteArray: []byte{1, 2, 3, 255}},
		{Type: TagIntArray, Name: "ia", IntArray: []int32{1, -2, 3}},
		{Type: TagLongArray, Name: "la", LongArray: []int64{1, -2, 3}},
	}
	for _, tree := range tests {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, tree))

		got, err := Parse(&buf, true)
		require.NoError(t, err)
		assert.Equal(t, tree, got)
	}
}

func TestRoundTripCompoundAndList(t *testing.T) {
	tree := Tree{
		Type: TagCompound,
		Name: "root",
		Compound: []Entry{
			{Key: "name", Value: Tree{Type: TagString, Str: "Steve"}},
			{Key: "health", Value: Tree{Type: TagFloat, Float: 20}},
			{Key: "items", Value: Tree{
				Type:     TagList,
				ListElem: TagInt,
				List: []Tree{
					{Type: TagInt, Int: 1},
					{Type: TagInt, Int: 2},
					{Type: TagInt, Int: 3},
				},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree))

	got, err := Parse(&buf, true)
	require.NoError(t, err)
	assert.Equal(t, tree, got)

	name, ok := got.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Steve", name.Str)
}

func TestEmptyList(t *testing.T) {
	tree := Tree{Type: TagCompound, Name: "", Compound: []Entry{
		{Key: "empty", Value: Tree{Type: TagList, ListElem: TagEnd}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree))

	got, err := Parse(&buf, true)
	require.NoError(t, err)
	list, ok := got.Get("empty")
	require.True(t, ok)
	assert.Equal(t, TagEnd, list.ListElem)
	assert.Empty(t, list.List)
}

func TestNegativeArrayLengthClampedOnRead(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(TagByteArray))
	buf.Write([]byte{0x00, 0x00}) // empty name
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})

	got, err := Parse(&buf, true)
	require.NoError(t, err)
	assert.Empty(t, got.ByteArray)
}

func TestUnnamedListElement(t *testing.T) {
	// Inside list elements trees carry no name.
	tree := Tree{Type: TagList, ListElem: TagString, List: []Tree{
		{Str: "a"}, {Str: "b"},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree))

	got, err := Parse(&buf, true)
	require.NoError(t, err)
	assert.Len(t, got.List, 2)
	assert.Equal(t, "a", got.List[0].Str)
}

func TestUnknownTag(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(200)
	_, err := Parse(&buf, true)
	assert.ErrorIs(t, err, ErrUnknownTag)
}
