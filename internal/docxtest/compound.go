package docxtest

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

const (
	cfbSectorSize = 512
	cfbFreeSect   = 0xFFFFFFFF
	cfbEndOfChain = 0xFFFFFFFE
	cfbFATSect    = 0xFFFFFFFD
	cfbNoStream   = 0xFFFFFFFF

	// Streams at the mini stream cutoff live in regular sectors.
	cfbStreamSize    = 4096
	cfbStreamSectors = cfbStreamSize / cfbSectorSize
)

// CompoundFile returns a version 3 OLE compound file holding one zero-filled
// top-level stream. Sector 0 is the FAT, sector 1 the directory and the
// stream data follows.
func CompoundFile(streamName string) []byte {
	le := binary.LittleEndian

	header := make([]byte, cfbSectorSize)
	copy(header, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le.PutUint16(header[0x18:], 0x003E)
	le.PutUint16(header[0x1A:], 0x0003)
	le.PutUint16(header[0x1C:], 0xFFFE)
	le.PutUint16(header[0x1E:], 9)
	le.PutUint16(header[0x20:], 6)
	le.PutUint32(header[0x2C:], 1) // FAT sectors
	le.PutUint32(header[0x30:], 1) // first directory sector
	le.PutUint32(header[0x38:], 0x1000)
	le.PutUint32(header[0x3C:], cfbEndOfChain)
	le.PutUint32(header[0x44:], cfbEndOfChain)
	le.PutUint32(header[0x4C:], 0)
	for i := 1; i < 109; i++ {
		le.PutUint32(header[0x4C+i*4:], cfbFreeSect)
	}

	fat := make([]byte, cfbSectorSize)
	for i := 0; i < cfbSectorSize/4; i++ {
		le.PutUint32(fat[i*4:], cfbFreeSect)
	}
	le.PutUint32(fat[0:], cfbFATSect)
	le.PutUint32(fat[4:], cfbEndOfChain)
	for s := 2; s < 2+cfbStreamSectors; s++ {
		next := uint32(s + 1)
		if s == 1+cfbStreamSectors {
			next = cfbEndOfChain
		}
		le.PutUint32(fat[s*4:], next)
	}

	dir := make([]byte, cfbSectorSize)
	writeDirEntry(dir[0:128], "Root Entry", 5, 1, cfbEndOfChain, 0)
	writeDirEntry(dir[128:256], streamName, 2, cfbNoStream, 2, cfbStreamSize)

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(fat)
	buf.Write(dir)
	buf.Write(make([]byte, cfbStreamSize))
	return buf.Bytes()
}

func writeDirEntry(b []byte, name string, objectType byte, child uint32, start uint32, size uint64) {
	le := binary.LittleEndian
	units := utf16.Encode([]rune(name))
	for i, u := range units {
		le.PutUint16(b[i*2:], u)
	}
	le.PutUint16(b[0x40:], uint16((len(units)+1)*2))
	b[0x42] = objectType
	b[0x43] = 1 // black
	le.PutUint32(b[0x44:], cfbNoStream)
	le.PutUint32(b[0x48:], cfbNoStream)
	le.PutUint32(b[0x4C:], child)
	le.PutUint32(b[0x74:], start)
	le.PutUint64(b[0x78:], size)
}
