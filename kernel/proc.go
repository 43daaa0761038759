package main

import (
	"unsafe"

	"rvkernel/internal/pagetable"
	"rvkernel/internal/sched"
)

const (
	procUnused   = 0
	procRunnable = 1
	procExited   = 2
)

// Process is one process-table slot: a fixed 8KiB kernel stack inlined
// into the struct, exactly like the original's struct process, so the
// whole table is a single static array with no heap allocation (spec.md
// §3, §4.2).
type Process struct {
	PID       int32
	State     int32
	SP        uint32
	PageTable uint32 // physical address of the first-level page table
	Stack     [KernelStackSize]byte
}

var (
	procs      [ProcsMax]Process
	currentIdx int
	idleIdx    int
)

func procSlots() []sched.Slot {
	slots := make([]sched.Slot, ProcsMax)
	for i := range procs {
		slots[i] = sched.Slot{PID: procs[i].PID, State: sched.State(procs[i].State)}
	}
	return slots
}

// createProcess finds a free slot, seeds its saved-register stack frame so
// switchContext's epilogue returns into userEntry, builds the process's
// page table (kernel identity map + virtio-blk window + the image mapped
// at UserBase), and marks the slot runnable. Grounded on the original's
// create_process (spec.md §4.2).
func createProcess(image []byte) *Process {
	slot := -1
	for i := range procs {
		if procs[i].State == procUnused {
			slot = i
			break
		}
	}
	if slot < 0 {
		kernelPanic("proc.go", 0, "no free process slots")
	}

	p := &procs[slot]

	sp := uintptr(unsafe.Pointer(&p.Stack[0])) + uintptr(len(p.Stack))
	// Seed the 13 callee-saved words switchContext's epilogue expects:
	// ra, s0-s11, pushed in the order switchContext restores them.
	push := func(v uint32) {
		sp -= 4
		*(*uint32)(unsafe.Pointer(sp)) = v
	}
	for i := 0; i < 12; i++ {
		push(0) // s11..s0
	}
	push(userEntryAddr()) // ra

	pageTable := allocPages(1)
	mapKernelIdentity(pageTable)
	mapPage(pageTable, VirtioBlkPaddr, VirtioBlkPaddr, pagetable.FlagR|pagetable.FlagW)

	for off := 0; uint32(off) < uint32(len(image)); off += PageSize {
		page := allocPages(1)
		copyToPhys(page, image[off:min(off+PageSize, len(image))])
		mapPage(pageTable, UserBase+uint32(off), page, pagetable.FlagU|pagetable.FlagR|pagetable.FlagW|pagetable.FlagX)
	}

	p.PID = int32(slot + 1)
	p.State = procRunnable
	p.SP = uint32(sp)
	p.PageTable = pageTable
	return p
}

func copyToPhys(dst uint32, src []byte) {
	d := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(dst))), len(src))
	copy(d, src)
}

// yield hands the CPU to the next runnable process, per the deterministic
// round-robin sched.NextRunnable (spec.md §4.2, §8). If the selected slot
// is the current one, control simply returns to the caller; if no process
// is runnable, the idle slot is selected and switched to.
func yield() {
	next := sched.NextRunnable(procSlots(), procs[currentIdx].PID, idleIdx)
	if next == currentIdx {
		return
	}

	prev := &procs[currentIdx]
	nextProc := &procs[next]
	currentIdx = next

	writeSatp(pagetable.Satp(nextProc.PageTable))
	writeSscratch(uint32(uintptr(unsafe.Pointer(&nextProc.Stack[0])) + uintptr(len(nextProc.Stack))))

	switchContext(&prev.SP, &nextProc.SP)
}

func writeSatp(v uint32)
func writeSscratch(v uint32)
func writeStvec(v uint32)
