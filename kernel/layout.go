// Package main is the freestanding RV32 supervisor image: boot stub, trap
// vector, cooperative scheduler, Sv32 memory manager, legacy VirtIO block
// driver, tar-backed file table, and syscall dispatcher (spec.md §2).
//
// Everything in this package is built for a bare RV32 target under an SBI
// firmware by an external cross toolchain and linker script (spec.md §1's
// "build/packaging toolchain" and "linker script symbol layout" are out of
// scope); this package only declares the symbols that boundary provides
// and the go:linkname bindings to the assembly stubs in boot.s.
package main

import "unsafe"

// Compile-time constants, spec.md §3/§6.
const (
	ProcsMax = 8 // fixed process table size
	FilesMax = 2 // fixed file table size

	PageSize = 4096 // Sv32 page size

	UserBase = 0x01000000 // fixed virtual base for every user image

	VirtioBlkPaddr = 0x10001000 // legacy MMIO virtio-blk window

	SectorSize = 512

	KernelStackSize = 8192 // per-process inline kernel stack (spec.md §3)
)

// Linker-provided symbols (spec.md §6 "Boot contract"). The linker script
// itself is an external collaborator; this kernel only needs their
// addresses, bound the same way _examples/iansmith-mazarin's
// src/go/mazarin/heap.go binds __end: a variable whose address *is* the
// symbol's address.
//
//go:linkname __bss __bss
var __bss uintptr

//go:linkname __bss_end __bss_end
var __bss_end uintptr

//go:linkname __stack_top __stack_top
var __stack_top uintptr

//go:linkname __free_ram __free_ram
var __free_ram uintptr

//go:linkname __free_ram_end __free_ram_end
var __free_ram_end uintptr

//go:linkname __kernel_base __kernel_base
var __kernel_base uintptr

// _binary_build_shell_bin_start/_size bracket the embedded initial
// userspace image. The shell program itself is an external collaborator
// (spec.md §1); this kernel only needs to locate and map it.
//
//go:linkname _binary_build_shell_bin_start _binary_build_shell_bin_start
var _binary_build_shell_bin_start uintptr

//go:linkname _binary_build_shell_bin_size _binary_build_shell_bin_size
var _binary_build_shell_bin_size uintptr

func symAddr(sym *uintptr) uint32 {
	return uint32(uintptr(unsafe.Pointer(sym)))
}
