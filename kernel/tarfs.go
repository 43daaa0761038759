package main

import "rvkernel/internal/ustar"

const fileDataSize = 1024

// diskSize matches the original's DISK_MAX_SIZE: FILES_MAX file slots,
// each sized as if it were sizeof(struct file), rounded up to a sector.
var diskSize = ustar.AlignUp((4+100+fileDataSize)*FilesMax, SectorSize)

// File is one fixed file-table slot (spec.md §4.5).
type File struct {
	InUse bool
	Name  string
	Data  [fileDataSize]byte
	Size  int
}

var files [FilesMax]File

// fsInit reads the whole disk image sector by sector and parses it into
// the fixed file table via internal/ustar.Decode, grounded on the
// original's fs_init.
func fsInit() {
	disk := make([]byte, diskSize)
	for sector := 0; sector*SectorSize < len(disk); sector++ {
		readWriteDisk(disk[sector*SectorSize:(sector+1)*SectorSize], uint32(sector), false)
	}

	entries, err := ustar.Decode(disk, FilesMax, fileDataSize)
	if err != nil {
		kernelPanic("tarfs.go", 0, err.Error())
	}
	for i, e := range entries {
		files[i].InUse = true
		files[i].Name = e.Name
		files[i].Size = len(e.Data)
		copy(files[i].Data[:], e.Data)
	}
}

// fsFlush serializes every in-use file-table slot back into a USTAR image
// via internal/ustar.Encode and writes it out sector by sector, grounded
// on the original's fs_flush.
func fsFlush() {
	var entries []ustar.Entry
	for i := range files {
		if !files[i].InUse {
			continue
		}
		entries = append(entries, ustar.Entry{
			Name: files[i].Name,
			Data: append([]byte(nil), files[i].Data[:files[i].Size]...),
		})
	}

	disk, err := ustar.Encode(entries, diskSize)
	if err != nil {
		kernelPanic("tarfs.go", 0, err.Error())
	}

	for sector := 0; sector*SectorSize < len(disk); sector++ {
		readWriteDisk(disk[sector*SectorSize:(sector+1)*SectorSize], uint32(sector), true)
	}
}

// fsLookup returns the file-table slot for filename, or nil if no file by
// that name is in use (spec.md §4.5).
func fsLookup(filename string) *File {
	for i := range files {
		if files[i].InUse && files[i].Name == filename {
			return &files[i]
		}
	}
	return nil
}
