package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyBytesAndReset(t *testing.T) {
	a := New(4)
	got := a.CopyBytes([]byte("hello"))
	assert.Equal(t, []byte("hello"), got)
	assert.Equal(t, 5, a.Len())

	a.Reset()
	assert.Equal(t, 0, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 5)
}

func TestAllocGrowsAsNeeded(t *testing.T) {
	a := New(2)
	big := a.Alloc(100)
	assert.Len(t, big, 100)
	assert.GreaterOrEqual(t, a.Cap(), 100)
}

func TestSurvivesResetOnlyWhenCopiedOut(t *testing.T) {
	a := New(16)
	name := a.CopyBytes([]byte("Notch"))
	// Simulate "copy out of the arena before reset" per the session design
	// note: anything that must survive the tick is duplicated onto the
	// ordinary Go heap, independent of the arena's backing array.
	owned := append([]byte(nil), name...)
	a.Reset()
	_ = a.CopyBytes([]byte("clobber-clobber-clobber"))

	assert.Equal(t, "Notch", string(owned))
}
