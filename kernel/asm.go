package main

// Declarations for the hand-written stubs in boot.s. Each of these has no
// Go body; the implementation lives in assembly, transliterated from the
// original's kernel/asm.c (spec.md §4.1, §4.2, §6).

// boot is the very first instruction the firmware jumps to.
func boot()

// switchContext saves the callee-saved registers onto *prevSP and restores
// them from *nextSP, switching the running stack (spec.md §4.2's Yield).
func switchContext(prevSP, nextSP *uint32)

// userEntry is the sret trampoline into the first user process.
func userEntry()

// kernelEntry is the stvec trap vector target.
func kernelEntry()

// kernelEntryAddr and userEntryAddr return their companion stub's own code
// address — the Go-safe equivalent of the original's (uint32_t)kernel_entry
// casts, since Go gives no portable way to take a func value's entry PC.
func kernelEntryAddr() uint32
func userEntryAddr() uint32

// sbiCallAsm issues a single SBI ecall with the given register arguments.
func sbiCallAsm(arg0, arg1, arg2, arg3, arg4, arg5, fid, eid uint32) (errv, value uint32)
