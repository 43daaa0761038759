package main

import "rvkernel/internal/sbi"

// sbiCall wraps sbiCallAsm's flat register arguments into the internal/sbi
// Ret type, grounded on the original's sbi_call plus this repo's own
// internal/sbi package.
func sbiCall(arg0, arg1, arg2, arg3, arg4, arg5, fid, eid uint32) sbi.Ret {
	errv, value := sbiCallAsm(arg0, arg1, arg2, arg3, arg4, arg5, fid, eid)
	return sbi.Ret{Error: int32(errv), Value: int32(value)}
}

// putchar writes a single byte to the firmware console (spec.md §4.1).
func putchar(ch byte) {
	sbiCall(uint32(ch), 0, 0, 0, 0, 0, 0, sbi.EIDConsolePutchar)
}

// getchar reads a single byte from the firmware console, blocking (by
// spinning) until one is available — there is no interrupt-driven input
// in this kernel (spec.md Non-goals: "non-ECALL interrupts").
func getchar() byte {
	for {
		ret := sbiCall(0, 0, 0, 0, 0, 0, 0, sbi.EIDConsoleGetchar)
		if ret.HasChar() {
			return ret.Char()
		}
	}
}

// putString writes s byte by byte. There is no formatted console printing
// in this kernel (spec.md Non-goals); callers build the exact bytes they
// want written.
func putString(s string) {
	for i := 0; i < len(s); i++ {
		putchar(s[i])
	}
}

// putHex writes v as 8 zero-padded lowercase hex digits.
func putHex(v uint32) {
	const digits = "0123456789abcdef"
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	for _, b := range buf {
		putchar(b)
	}
}

// kernelPanic prints a file:line message and halts forever in a tight
// spin loop — there is no recovery path in a bare-metal kernel (spec.md
// §7's top tier: "unrecoverable invariant violations ... halt").
func kernelPanic(file string, line int, msg string) {
	putString("PANIC: ")
	putString(file)
	putchar(':')
	putInt(line)
	putString(": ")
	putString(msg)
	putchar('\n')
	for {
	}
}

// putInt writes v in decimal with no leading zeros (0 prints as "0").
func putInt(v int) {
	if v == 0 {
		putchar('0')
		return
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [10]byte
	n := 0
	for v > 0 {
		buf[n] = byte('0' + v%10)
		v /= 10
		n++
	}
	if neg {
		putchar('-')
	}
	for i := n - 1; i >= 0; i-- {
		putchar(buf[i])
	}
}
