package main

import "unsafe"

// kernelMain is the first Go code to run, called from boot's assembly
// once sp points at the top of the boot stack. It never returns (spec.md
// §6's boot contract).
func kernelMain() {
	zeroBSS()
	writeStvec(kernelEntryAddr())

	initMemory()

	virtioBlkInit()
	fsInit()

	idle := createProcess(nil)
	idle.PID = -1
	idleIdx = indexOf(idle)
	currentIdx = idleIdx

	shellImage := unsafe.Slice((*byte)(unsafe.Pointer(&_binary_build_shell_bin_start)), symAddr(&_binary_build_shell_bin_size))
	createProcess(shellImage)

	yield()
	kernelPanic("main.go", 0, "switched to idle")
}

func zeroBSS() {
	start := symAddr(&__bss)
	end := symAddr(&__bss_end)
	zeroRange(start, end-start)
}

func indexOf(p *Process) int {
	for i := range procs {
		if &procs[i] == p {
			return i
		}
	}
	kernelPanic("main.go", 0, "process not found in table")
	return -1
}

func main() {
	boot()
}
