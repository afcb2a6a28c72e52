package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSNBTPrimitives(t *testing.T) {
	assert.Equal(t, "42", SNBT(Tree{Type: TagInt, Int: 42}))
	assert.Equal(t, "-7b", SNBT(Tree{Type: TagByte, Byte: -7}))
	assert.Equal(t, "100L", SNBT(Tree{Type: TagLong, Long: 100}))
	assert.Equal(t, `"hi"`, SNBT(Tree{Type: TagString, Str: "hi"}))
}

func TestSNBTArrays(t *testing.T) {
	assert.Equal(t, "[B;1B,-2B]", SNBT(Tree{Type: TagByteArray, ByteArray: []byte{1, 254}}))
	assert.Equal(t, "[I;1,2,3]", SNBT(Tree{Type: TagIntArray, IntArray: []int32{1, 2, 3}}))
	assert.Equal(t, "[L;1L,2L]", SNBT(Tree{Type: TagLongArray, LongArray: []int64{1, 2}}))
}

func TestSNBTCompoundAndList(t *testing.T) {
	tree := Tree{
		Type: TagCompound,
		Compound: []Entry{
			{Key: "a", Value: Tree{Type: TagInt, Int: 1}},
			{Key: "b", Value: Tree{Type: TagList, ListElem: TagInt, List: []Tree{{Int: 1}, {Int: 2}}}},
		},
	}
	assert.Equal(t, "{a:1,b:[1,2]}", SNBT(tree))
}
