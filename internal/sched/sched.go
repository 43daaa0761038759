// Package sched implements the pure selection rule behind spec.md §4.2's
// cooperative yield: given a process table's state, decide which slot runs
// next. kernel/proc.go owns the actual context switch (register save and
// page-table swap); this package only answers "which index."
package sched

// State is a process slot's lifecycle state (spec.md §3's "state tag").
type State int

const (
	Unused State = iota
	Runnable
	Exited
)

// Slot is the scheduler-relevant projection of a process table entry.
type Slot struct {
	PID   int32
	State State
}

// NextRunnable scans slots in round-robin order starting at the slot whose
// index equals currentPID (process pids are slotIndex+1, so starting the
// scan there begins with the slot *after* the current process's own slot),
// and returns the index of the first Runnable slot with a positive pid.
// If none is found, it returns idleIndex.
//
// currentPID may be -1 (the idle process's pid, per spec.md §3); the scan
// start is normalized into [0, len(slots)) so that case starts the scan at
// slot 0 instead of indexing negatively.
func NextRunnable(slots []Slot, currentPID int32, idleIndex int) int {
	n := len(slots)
	if n == 0 {
		return idleIndex
	}
	start := int(currentPID) % n
	if start < 0 {
		start = 0
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if slots[idx].State == Runnable && slots[idx].PID > 0 {
			return idx
		}
	}
	return idleIndex
}
