// Package pagetable implements the hardware-independent half of Sv32:
// splitting a virtual address into its two 10-bit page-table indices and
// encoding/decoding a page-table entry's PPN and permission flags.
//
// This is kept separate from kernel/memory.go, which holds the actual
// unsafe.Pointer walks over real page-table pages, so the encode/decode
// logic can be unit tested on the host toolchain without a RV32 target.
package pagetable

// PageSize is fixed by Sv32: every page table and every mapped page is
// 4 KiB.
const PageSize = 4096

// Entry flag bits, matching the Sv32 PTE layout (bits 9..0).
const (
	FlagV Flags = 1 << 0 // Valid
	FlagR Flags = 1 << 1 // Readable
	FlagW Flags = 1 << 2 // Writable
	FlagX Flags = 1 << 3 // Executable
	FlagU Flags = 1 << 4 // Accessible from U-mode
)

// Flags is the low-bit permission/validity field of a page-table entry.
type Flags uint32

// Valid reports whether FlagV is set.
func (f Flags) Valid() bool { return f&FlagV != 0 }

// VPN1 returns bits 31..22 of a virtual address: the index into the
// top-level (table1) page table.
func VPN1(vaddr uint32) uint32 {
	return (vaddr >> 22) & 0x3ff
}

// VPN0 returns bits 21..12 of a virtual address: the index into the
// second-level (table0) page table addressed by table1[VPN1(vaddr)].
func VPN0(vaddr uint32) uint32 {
	return (vaddr >> 12) & 0x3ff
}

// Aligned reports whether addr is a multiple of PageSize.
func Aligned(addr uint32) bool {
	return addr%PageSize == 0
}

// EncodePTE packs a physical page number and flag bits into a page-table
// entry word, per Sv32: bits 31..10 hold the PPN, bits 9..0 hold flags.
func EncodePTE(ppn uint32, flags Flags) uint32 {
	return (ppn << 10) | uint32(flags)
}

// DecodePTE splits a page-table entry word back into its PPN and flags.
func DecodePTE(pte uint32) (ppn uint32, flags Flags) {
	return pte >> 10, Flags(pte & 0x3ff)
}

// PPNOfAddr converts a 4 KiB-aligned physical (or page-table) address into
// its physical page number.
func PPNOfAddr(addr uint32) uint32 {
	return addr / PageSize
}

// AddrOfPPN is the inverse of PPNOfAddr.
func AddrOfPPN(ppn uint32) uint32 {
	return ppn * PageSize
}

// Satp builds the Sv32 SATP CSR value for a given table1 physical address:
// mode bit 31 set, PPN of table1 in the low bits.
func Satp(table1Addr uint32) uint32 {
	const modeSv32 = 1 << 31
	return modeSv32 | PPNOfAddr(table1Addr)
}
