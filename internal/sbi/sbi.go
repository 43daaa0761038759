// Package sbi describes the small slice of the Supervisor Binary Interface
// (SBI v0.1) this kernel calls: console putchar and console getchar.
package sbi

// Extension and function IDs for the legacy (v0.1) console calls.
const (
	EIDConsolePutchar = 1
	EIDConsoleGetchar = 2
)

// Ret is the (error, value) pair every SBI call returns in (a0, a1).
// The legacy (v0.1) console-getchar call is unusual: it packs its result
// into Error directly (the byte read, or -1 when nothing is available yet)
// and leaves Value unused.
type Ret struct {
	Error int32
	Value int32
}

// HasChar reports whether a console-getchar Ret carries a byte.
func (r Ret) HasChar() bool {
	return r.Error >= 0
}

// Char returns the byte carried by a console-getchar Ret. Only meaningful
// when HasChar reports true.
func (r Ret) Char() byte {
	return byte(r.Error)
}
