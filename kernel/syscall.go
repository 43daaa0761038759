package main

import "unsafe"

// Syscall numbers, passed in a3 (spec.md §4.6).
const (
	sysPutchar   = 1
	sysGetchar   = 2
	sysExit      = 3
	sysReadfile  = 4
	sysWritefile = 5
)

// cString reads a NUL-terminated string out of user memory at addr. There
// is no length bound passed by the caller for filenames, matching the
// original's strcpy-based handling; the tar filename field itself bounds
// it to ustar.NameSize in practice.
func cString(addr uint32) string {
	p := unsafe.Pointer(uintptr(addr))
	n := 0
	for *(*byte)(unsafe.Pointer(uintptr(addr) + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

func userBytes(addr uint32, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), n)
}

// clampTransferLen implements spec.md §4.6's READFILE/WRITEFILE formula
// exactly: copy min(a2, sizeof(data)) bytes. Kept separate from
// handleSyscall so it can be exercised by a host-independent test without
// a real TrapFrame or user memory.
func clampTransferLen(requested, slotCap int) int {
	if requested > slotCap {
		return slotCap
	}
	return requested
}

// handleSyscall dispatches on f.A3, the syscall number, per spec.md §4.6's
// table, grounded on the original's handle_syscall.
func handleSyscall(f *TrapFrame) {
	switch f.A3 {
	case sysPutchar:
		putchar(byte(f.A0))

	case sysGetchar:
		for {
			ret := sbiCall(0, 0, 0, 0, 0, 0, 0, 2)
			if ret.HasChar() {
				f.A0 = uint32(ret.Char())
				break
			}
			yield()
		}

	case sysExit:
		putString("process ")
		putInt(int(procs[currentIdx].PID))
		putString(" exited\n")
		procs[currentIdx].State = procExited
		yield()
		kernelPanic("syscall.go", 0, "unreachable: exited process resumed")

	case sysReadfile, sysWritefile:
		filename := cString(f.A0)
		length := int(f.A2)

		file := fsLookup(filename)
		if file == nil {
			f.A0 = ^uint32(0) // -1
			return
		}

		length = clampTransferLen(length, fileDataSize)

		if f.A3 == sysWritefile {
			copy(file.Data[:], userBytes(f.A1, length))
			file.Size = length
			fsFlush()
		} else {
			copy(userBytes(f.A1, length), file.Data[:length])
		}
		f.A0 = uint32(length)

	default:
		kernelPanic("syscall.go", 0, "unexpected syscall a3="+hex32(f.A3))
	}
}
