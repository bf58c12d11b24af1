// Package gifcheck validates the structure of animated CimBar GIF output.
package gifcheck

import (
	"encoding/binary"
	"fmt"
)

// Signature is the GIF89a format signature at offset 0.
const Signature = "GIF89a"

// HeaderSize is the length of the signature plus the logical screen descriptor.
const HeaderSize = 13

// MinHeaderSize covers the signature, the screen size and the packed flags,
// everything the structural checks read.
const MinHeaderSize = 11

// flagGlobalColorTable marks a global color table following the header.
const flagGlobalColorTable = 0x80

/*
Header layout (little-endian):

	0-5:  signature "GIF89a"
	6-7:  logical screen width
	8-9:  logical screen height
	10:   packed flags
	        bit 7:   global color table flag
	        bits 4-6: color resolution
	        bit 3:   sort flag
	        bits 0-2: global color table size
	11:   background color index
	12:   pixel aspect ratio
*/

// Header is the decoded GIF header and logical screen descriptor.
type Header struct {
	Signature       [6]byte
	Width           uint16
	Height          uint16
	Flags           byte
	BackgroundIndex byte
	AspectRatio     byte
}

// ParseHeader decodes the header from data. At least MinHeaderSize bytes
// are required; BackgroundIndex and AspectRatio stay zero when data ends
// before them.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < MinHeaderSize {
		return h, fmt.Errorf("%w: %d bytes, need %d", ErrTruncated, len(data), MinHeaderSize)
	}
	copy(h.Signature[:], data[0:6])
	h.Width = binary.LittleEndian.Uint16(data[6:8])
	h.Height = binary.LittleEndian.Uint16(data[8:10])
	h.Flags = data[10]
	if len(data) >= HeaderSize {
		h.BackgroundIndex = data[11]
		h.AspectRatio = data[12]
	}
	return h, nil
}

// HasGlobalColorTable reports whether the global color table flag is set.
func (h Header) HasGlobalColorTable() bool {
	return h.Flags&flagGlobalColorTable != 0
}

// GlobalColorTableEntries returns the declared global color table size.
// Only meaningful when HasGlobalColorTable is true.
func (h Header) GlobalColorTableEntries() int {
	return 1 << ((h.Flags & 0x07) + 1)
}
