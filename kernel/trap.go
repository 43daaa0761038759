package main

// TrapFrame mirrors the 31 words kernelEntry spills onto the kernel stack
// before calling handleTrap, in exactly that order (spec.md §4.1): ra, gp,
// tp, t0-t6, a0-a7, s0-s11, sp.
type TrapFrame struct {
	RA, GP, TP                                        uint32
	T0, T1, T2, T3, T4, T5, T6                        uint32
	A0, A1, A2, A3, A4, A5, A6, A7                     uint32
	S0, S1, S2, S3, S4, S5, S6, S7, S8, S9, S10, S11 uint32
	SP                                                uint32
}

const scauseECall = 8

// Each of these is a tiny asm stub in csr.s — there is no portable way to
// parameterize a CSR number at a Go call site, so each CSR gets its own
// stub rather than a single csrRead(num) helper.
func readScause() uint32
func readStval() uint32
func readSepc() uint32
func writeSepc(uint32)

// handleTrap is called directly from kernelEntry in boot.s by its Go
// symbol name; no linkname needed since it's a package-level function of
// the same package.
func handleTrap(f *TrapFrame) {
	scause := readScause()
	stval := readStval()
	userPC := readSepc()

	if scause == scauseECall {
		handleSyscall(f)
		userPC += 4 // skip the ecall instruction itself
		writeSepc(userPC)
		return
	}

	kernelPanic("trap.go", 0, "unexpected trap scause="+hex32(scause)+" stval="+hex32(stval)+" sepc="+hex32(userPC))
}

// hex32 renders v as an 8-digit lowercase hex string without pulling in
// fmt (spec.md Non-goals: no formatted console printing as a specified
// interface).
func hex32(v uint32) string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf)
}
