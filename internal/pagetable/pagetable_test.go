package pagetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvkernel/internal/pagetable"
)

func TestVPNSplit(t *testing.T) {
	// 0x80201000 -> VPN1 = 0x200 (top 10 bits of 0x80201), VPN0 = 0x201 & 0x3ff
	vaddr := uint32(0x80201000)
	assert.Equal(t, uint32(0x200), pagetable.VPN1(vaddr))
	assert.Equal(t, uint32(0x201), pagetable.VPN0(vaddr))
}

func TestEncodeDecodePTERoundTrip(t *testing.T) {
	ppn := pagetable.PPNOfAddr(0x80100000)
	flags := pagetable.FlagV | pagetable.FlagR | pagetable.FlagW | pagetable.FlagX

	pte := pagetable.EncodePTE(ppn, flags)
	gotPPN, gotFlags := pagetable.DecodePTE(pte)

	assert.Equal(t, ppn, gotPPN)
	assert.Equal(t, flags, gotFlags)
	assert.True(t, gotFlags.Valid())
}

func TestDecodeWithoutValidBit(t *testing.T) {
	_, flags := pagetable.DecodePTE(0)
	assert.False(t, flags.Valid())
}

func TestAligned(t *testing.T) {
	assert.True(t, pagetable.Aligned(0x80000000))
	assert.True(t, pagetable.Aligned(4096))
	assert.False(t, pagetable.Aligned(4097))
	assert.False(t, pagetable.Aligned(1))
}

func TestSatpEncodesModeAndPPN(t *testing.T) {
	table1 := uint32(0x80404000)
	satp := pagetable.Satp(table1)

	require.NotZero(t, satp&(1<<31), "Sv32 mode bit must be set")
	assert.Equal(t, pagetable.PPNOfAddr(table1), satp&^(1<<31))
}

func TestAddrOfPPNInverse(t *testing.T) {
	addr := uint32(0x80123000)
	ppn := pagetable.PPNOfAddr(addr)
	assert.Equal(t, addr, pagetable.AddrOfPPN(ppn))
}
