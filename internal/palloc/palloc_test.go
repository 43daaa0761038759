package palloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvkernel/internal/palloc"
	"rvkernel/internal/pagetable"
)

func TestBumpAllocReturnsAlignedAdvancingAddresses(t *testing.T) {
	const base, limit = 0x80100000, 0x80200000
	b := palloc.NewBump(base, limit)

	a1, err := b.Alloc(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(base), a1)
	assert.True(t, pagetable.Aligned(a1))

	a2, err := b.Alloc(2)
	require.NoError(t, err)
	assert.Equal(t, a1+pagetable.PageSize, a2)
	assert.True(t, pagetable.Aligned(a2))
}

func TestBumpExhaustionPanicsTheKernelViaError(t *testing.T) {
	const base, limit = 0x80100000, 0x80100000 + 2*pagetable.PageSize
	b := palloc.NewBump(base, limit)

	_, err := b.Alloc(2)
	require.NoError(t, err)

	_, err = b.Alloc(1)
	assert.ErrorIs(t, err, palloc.ErrOutOfMemory)
}

func TestBumpNeverResetsCursor(t *testing.T) {
	const base, limit = 0x80100000, 0x80300000
	b := palloc.NewBump(base, limit)

	first, err := b.Alloc(1)
	require.NoError(t, err)
	second, err := b.Alloc(1)
	require.NoError(t, err)
	third, err := b.Alloc(1)
	require.NoError(t, err)

	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestFreeListReuseAfterFreeReturnsSameAddress(t *testing.T) {
	fl := palloc.NewFreeList(0x80100000, 4)

	first, err := fl.Alloc(1)
	require.NoError(t, err)

	require.NoError(t, fl.Free(first))

	second, err := fl.Alloc(1)
	require.NoError(t, err)

	assert.Equal(t, first, second, "freeing then allocating one page must return the same physical page")
}

func TestFreeListExhaustion(t *testing.T) {
	fl := palloc.NewFreeList(0x80100000, 2)

	_, err := fl.Alloc(2)
	require.NoError(t, err)

	_, err = fl.Alloc(1)
	assert.ErrorIs(t, err, palloc.ErrOutOfMemory)
}

func TestFreeListFreeWithoutAllocIsError(t *testing.T) {
	fl := palloc.NewFreeList(0x80100000, 2)
	err := fl.Free(0x80100000)
	assert.ErrorIs(t, err, palloc.ErrEmpty)
}
