package main

import (
	"unsafe"

	"rvkernel/internal/virtq"
)

// Legacy MMIO virtio-blk register offsets (spec.md §4.4), identical to the
// original's include/virtio.h.
const (
	regMagic         = 0x00
	regVersion       = 0x04
	regDeviceID      = 0x08
	regQueueSel      = 0x30
	regQueueNum      = 0x38
	regQueueAlign    = 0x3c
	regQueuePFN      = 0x40
	regQueueNotify   = 0x50
	regDeviceStatus  = 0x70
	regDeviceConfig  = 0x100

	magicValue = 0x74726976 // "virt"
	deviceIDBlk = 2

	statusAck      = 1
	statusDriver   = 2
	statusDriverOK = 4
	statusFeatOK   = 8
)

func virtioReg32(offset uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(uintptr(VirtioBlkPaddr + offset)))
}

func virtioReg64(offset uint32) *uint64 {
	return (*uint64)(unsafe.Pointer(uintptr(VirtioBlkPaddr + offset)))
}

func virtioRead32(offset uint32) uint32   { return *virtioReg32(offset) }
func virtioWrite32(offset, v uint32)      { *virtioReg32(offset) = v }
func virtioFetchOr32(offset, v uint32) {
	virtioWrite32(offset, virtioRead32(offset)|v)
}

// blkReq mirrors struct virtio_blk_req: a 16-byte header (type, reserved,
// 64-bit sector) followed by one sector of data and a 1-byte status.
type blkReq struct {
	Type     uint32
	Reserved uint32
	Sector   uint64
	Data     [virtq.SectorSize]byte
	Status   uint8
}

var (
	blkReqAddr  uint32
	blkQueue    virtqState
	blkCapacity uint32
)

// virtqState is the driver-side bookkeeping for one virtqueue: the
// descriptor table, the avail ring (internal/virtq.AvailRing), and the
// used-ring index the device publishes.
type virtqState struct {
	descsAddr    uint32 // physical address of [virtq.QueueSize]virtq.Desc
	avail        virtq.AvailRing
	lastUsedIdx  uint16
	usedIdxAddr  uint32 // address of the device's used.index field
	queueIndex   uint32
}

// virtioBlkInit performs the legacy VirtIO handshake and allocates the
// single request buffer this driver ever uses, grounded on the original's
// virtio_blk_init (spec.md §4.4).
func virtioBlkInit() {
	if virtioRead32(regMagic) != magicValue {
		kernelPanic("virtio.go", 0, "virtio: invalid magic value")
	}
	if virtioRead32(regVersion) != 1 {
		kernelPanic("virtio.go", 0, "virtio: invalid version")
	}
	if virtioRead32(regDeviceID) != deviceIDBlk {
		kernelPanic("virtio.go", 0, "virtio: invalid device id")
	}

	virtioWrite32(regDeviceStatus, 0)
	virtioFetchOr32(regDeviceStatus, statusAck)
	virtioFetchOr32(regDeviceStatus, statusDriver)
	virtioFetchOr32(regDeviceStatus, statusFeatOK)

	virtqInit(0)

	virtioWrite32(regDeviceStatus, statusDriverOK)

	blkCapacity = uint32(*virtioReg64(regDeviceConfig)) * virtq.SectorSize

	const reqSize = 4 + 4 + 8 + virtq.SectorSize + 1
	blkReqAddr = allocPages((reqSize + PageSize - 1) / PageSize)
}

// virtqInit allocates the queue's backing page(s) and walks the
// register-level negotiation steps (spec.md §4.4).
func virtqInit(index uint32) {
	const virtqStructSize = virtq.QueueSize*16 + (4 + virtq.QueueSize*2) + 4096 // descs + avail + used (page-aligned per the original)
	queuePages := (virtqStructSize + PageSize - 1) / PageSize
	queueAddr := allocPages(uint32(queuePages))

	blkQueue.descsAddr = queueAddr
	blkQueue.queueIndex = index
	blkQueue.usedIdxAddr = queueAddr + 4096 + 2 // used ring page-aligned per original_source/include/virtio.h

	virtioWrite32(regQueueSel, index)
	virtioWrite32(regQueueNum, virtq.QueueSize)
	virtioWrite32(regQueueAlign, 0)
	virtioWrite32(regQueuePFN, queueAddr/PageSize)
}

func writeDesc(index uint16, d virtq.Desc) {
	base := blkQueue.descsAddr + uint32(index)*16
	*(*uint64)(unsafe.Pointer(uintptr(base))) = d.Addr
	*(*uint32)(unsafe.Pointer(uintptr(base + 8))) = d.Len
	*(*uint16)(unsafe.Pointer(uintptr(base + 12))) = d.Flags
	*(*uint16)(unsafe.Pointer(uintptr(base + 14))) = d.Next
}

func availRingAddr() uint32 { return blkQueue.descsAddr + virtq.QueueSize*16 }

func virtqKick(descIndex uint16) {
	slot := blkQueue.avail.Index % virtq.QueueSize
	blkQueue.avail.Submit(descIndex)
	ring := availRingAddr()
	*(*uint16)(unsafe.Pointer(uintptr(ring))) = 0 // flags
	*(*uint16)(unsafe.Pointer(uintptr(ring + 2))) = blkQueue.avail.Index
	*(*uint16)(unsafe.Pointer(uintptr(ring + 4 + uint32(slot)*2))) = descIndex
	memoryFence()
	virtioWrite32(regQueueNotify, blkQueue.queueIndex)
	blkQueue.lastUsedIdx++
}

func virtqBusy() bool {
	used := *(*uint16)(unsafe.Pointer(uintptr(blkQueue.usedIdxAddr)))
	return virtq.IsBusy(blkQueue.lastUsedIdx, used)
}

func memoryFence()

// readWriteDisk reads (write=false) or writes (write=true) a single
// sector into/from buf, blocking on the device via virtqBusy, grounded
// on the original's read_write_disk (spec.md §4.4).
func readWriteDisk(buf []byte, sector uint32, write bool) {
	if sector >= blkCapacity/SectorSize {
		putString("virtio: tried to read/write sector=")
		putInt(int(sector))
		putString(", but capacity is ")
		putInt(int(blkCapacity / SectorSize))
		putString("\n")
		return
	}

	req := (*blkReq)(unsafe.Pointer(uintptr(blkReqAddr)))
	req.Sector = uint64(sector)
	if write {
		req.Type = 1
		copy(req.Data[:], buf)
	} else {
		req.Type = 0
	}

	chain := virtq.BuildSectorChain(uint64(blkReqAddr), write)
	for i, d := range chain {
		writeDesc(uint16(i), d)
	}

	virtqKick(0)
	for virtqBusy() {
	}

	if req.Status != 0 {
		putString("virtio: warn: failed to read/write sector=")
		putInt(int(sector))
		putString(", status=")
		putInt(int(req.Status))
		putString("\n")
		return
	}
	if !write {
		copy(buf, req.Data[:])
	}
}
