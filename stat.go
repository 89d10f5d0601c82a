package ar

import (
	"fmt"
	"io/fs"
	"time"
)

// modeRegular is the file type bit that ar tools record in the mode of a regular file.
const modeRegular = 0100000

// FileInfoHeader creates a partially-populated Header from fi. Only regular files can be stored in
// an archive. The uid and gid are filled in on platforms that expose them.
func FileInfoHeader(fi fs.FileInfo) (*Header, error) {
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("ar: %s: not a regular file", fi.Name())
	}
	header := &Header{
		Name:    fi.Name(),
		ModTime: time.Unix(fi.ModTime().Unix(), 0),
		Mode:    modeRegular | int64(fi.Mode().Perm()),
		Size:    fi.Size(),
	}
	statHeader(fi, header)
	return header, nil
}

// FileInfo returns an fs.FileInfo describing the file the header belongs to.
func (h *Header) FileInfo() fs.FileInfo {
	return headerFileInfo{h}
}

type headerFileInfo struct {
	h *Header
}

func (fi headerFileInfo) Name() string       { return fi.h.Name }
func (fi headerFileInfo) Size() int64        { return fi.h.Size }
func (fi headerFileInfo) Mode() fs.FileMode  { return fs.FileMode(fi.h.Mode).Perm() }
func (fi headerFileInfo) ModTime() time.Time { return fi.h.ModTime }
func (fi headerFileInfo) IsDir() bool        { return false }
func (fi headerFileInfo) Sys() interface{}   { return fi.h }
