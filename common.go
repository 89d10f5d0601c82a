package ar

import (
	"time"
)

const (
	HEADER_BYTE_SIZE = 60
	GLOBAL_HEADER    = "!<arch>\n"

	// HEADER_TERMINATOR closes every file header.
	HEADER_TERMINATOR = "`\n"
)

// Widths of the fields of a file header, in the order they appear.
const (
	nameWidth = 16
	dateWidth = 12
	uidWidth  = 6
	gidWidth  = 6
	modeWidth = 8
	sizeWidth = 10
	fmagWidth = 2
)

// Header is the metadata stored in the fixed-size header that precedes each file in an archive.
type Header struct {
	Name    string
	ModTime time.Time
	Uid     int
	Gid     int
	Mode    int64
	Size    int64
}

// Member is a complete archive member: its header plus its data section.
type Member struct {
	Header
	Data []byte
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}

// padding returns the number of pad bytes that follow a data section of the given size.
func padding(size int64) int64 {
	return size % 2
}
