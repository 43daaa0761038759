package ustar_test

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvkernel/internal/ustar"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entries := []ustar.Entry{
		{Name: "hello.txt", Data: []byte("hello world")},
	}

	disk, err := ustar.Encode(entries, 4096)
	require.NoError(t, err)

	got, err := ustar.Decode(disk, 2, 1024)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hello.txt", got[0].Name)
	assert.Equal(t, []byte("hello world"), got[0].Data)
}

func TestEmptyDiskHasZeroEntries(t *testing.T) {
	disk := make([]byte, 2048)
	got, err := ustar.Decode(disk, 2, 1024)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeTruncatesOversizedFiles(t *testing.T) {
	big := bytes.Repeat([]byte("x"), 2000)
	entries := []ustar.Entry{{Name: "big.bin", Data: big}}

	disk, err := ustar.Encode(entries, 8192)
	require.NoError(t, err)

	got, err := ustar.Decode(disk, 2, 1024)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Data, 1024, "files longer than the 1024-byte slot must be truncated, not rejected")
}

func TestEncodeRejectsWhenEntriesDoNotFit(t *testing.T) {
	entries := []ustar.Entry{{Name: "a", Data: make([]byte, 4000)}}
	_, err := ustar.Encode(entries, 512)
	assert.Error(t, err)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	disk := make([]byte, 512)
	copy(disk[0:9], "bogus.txt")
	copy(disk[257:263], "wrong\x00")
	_, _, _, err := ustar.ParseHeader(disk)
	assert.ErrorIs(t, err, ustar.ErrBadMagic)
}

// TestOutputAcceptedByStandardTarReader exercises spec.md §8's
// round-trip property directly against the standard library's archive/tar
// reader, which is what an "external tar reader" in the wild would be.
func TestOutputAcceptedByStandardTarReader(t *testing.T) {
	entries := []ustar.Entry{
		{Name: "hello.txt", Data: []byte("hello world")},
		{Name: "second.txt", Data: []byte("more data, a bit longer this time")},
	}

	disk, err := ustar.Encode(entries, 1<<16)
	require.NoError(t, err)

	tr := tar.NewReader(bytes.NewReader(disk))
	var found []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)

		var want []byte
		for _, e := range entries {
			if e.Name == hdr.Name {
				want = e.Data
			}
		}
		assert.Equal(t, want, data)
		found = append(found, hdr.Name)
	}
	assert.ElementsMatch(t, []string{"hello.txt", "second.txt"}, found)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 512, ustar.AlignUp(1, 512))
	assert.Equal(t, 512, ustar.AlignUp(512, 512))
	assert.Equal(t, 1024, ustar.AlignUp(513, 512))
}
