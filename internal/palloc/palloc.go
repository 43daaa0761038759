// Package palloc implements the two page-allocator variants spec.md §4.3
// describes, as pure address arithmetic with no dependency on real
// physical memory — kernel/memory.go supplies the actual zeroing and owns
// the one instance that is wired into the boot path.
//
// Bump is the chosen, primary allocator (spec.md §3 "Page allocator").
// FreeList is the documented optional variant, kept as an alternative
// implementation per spec.md §4.3 and exercised by its own tests, but not
// used by kernel/main.go.
package palloc

import (
	"errors"

	"rvkernel/internal/pagetable"
)

// ErrOutOfMemory is returned when an allocator's backing region is
// exhausted. The kernel's only correct response is to panic (spec.md §7);
// it is a plain error here so the host-side tests can assert on it.
var ErrOutOfMemory = errors.New("out of memory")

// Bump is a monotonically increasing cursor into [Base, Limit). It never
// resets once initialized and never frees.
type Bump struct {
	Base, Limit uint32
	next        uint32
	initialized bool
}

// NewBump creates a bump allocator over the half-open region [base, limit).
func NewBump(base, limit uint32) *Bump {
	return &Bump{Base: base, Limit: limit}
}

// Alloc reserves n contiguous 4 KiB pages and returns the address of the
// first one; a request for 0 pages reserves 1. The cursor is seeded to
// Base on first use and never reset afterward, per spec.md §4.3's
// allocator lifecycle.
func (b *Bump) Alloc(n uint32) (uint32, error) {
	if !b.initialized {
		b.next = b.Base
		b.initialized = true
	}
	if n == 0 {
		n = 1
	}
	size := uint64(n) * pagetable.PageSize
	if uint64(b.next)+size > uint64(b.Limit) {
		return 0, ErrOutOfMemory
	}
	addr := b.next
	b.next += uint32(size)
	return addr, nil
}

// FreeList is the optional alternative: a fixed-capacity stack of
// page-frame addresses with a "free" cursor, matching
// _examples/original_source/kernel/memory.c's struct free_list exactly.
type FreeList struct {
	addrs []uint32
	free  int
}

// NewFreeList pre-populates numPages sequential page-frame addresses
// starting at base, all initially free.
func NewFreeList(base uint32, numPages int) *FreeList {
	addrs := make([]uint32, numPages)
	for i := range addrs {
		addrs[i] = base + uint32(i)*pagetable.PageSize
	}
	return &FreeList{addrs: addrs}
}

// ErrCorrupt indicates the free list's bookkeeping was violated (an
// address slot that should hold a free page frame was already consumed).
var ErrCorrupt = errors.New("page frame address is 0")

// ErrEmpty is returned by Free when nothing has been allocated yet.
var ErrEmpty = errors.New("free list is empty")

// Alloc consumes n entries starting at the free cursor and returns the
// first one's address. Do not allocate more than one page at a time if
// fragmentation from interleaved Free calls matters, per the original's
// own comment.
func (f *FreeList) Alloc(n int) (uint32, error) {
	if f.free+n > len(f.addrs) {
		return 0, ErrOutOfMemory
	}
	for i := 0; i < n; i++ {
		if f.addrs[f.free+i] == 0 {
			return 0, ErrCorrupt
		}
	}
	addr := f.addrs[f.free]
	for i := 0; i < n; i++ {
		f.addrs[f.free+i] = 0
	}
	f.free += n
	return addr, nil
}

// Free returns a page frame to the list so a later Alloc can reuse it.
func (f *FreeList) Free(addr uint32) error {
	if f.free == 0 {
		return ErrEmpty
	}
	f.free--
	f.addrs[f.free] = addr
	return nil
}
