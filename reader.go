/*
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package ar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Reader provides read access to an ar archive.
// Call next to skip files.
//
// Example:
//
//	reader, err := NewReader(f)
//	if err != nil {
//		return err
//	}
//	var buf bytes.Buffer
//	for {
//		_, err := reader.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		io.Copy(&buf, reader)
//	}
type Reader struct {
	// r is the underlying archive file.
	r *bufio.Reader

	// nb is the number of bytes in the current data section that remain unread.
	nb int64

	// pad is the number of padding bytes appended to the current data section; it is always either 0
	// or 1, depending on whether the length of the data section is an even or odd number of bytes
	// respectively.
	pad int64

	// err is the first error encountered while reading the archive, including io.EOF once the end of
	// the archive has been reached. Once set, every subsequent call to Next returns it.
	err error
}

// NewReader creates a new reader reading from r. It returns ErrBadMagic if the global archive
// header is missing or malformed.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{
		r: bufio.NewReader(r),
	}
	hdr := make([]byte, len(GLOBAL_HEADER))
	if _, err := io.ReadFull(rd.r, hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("ar: %w", err)
	}
	if string(hdr) != GLOBAL_HEADER {
		return nil, ErrBadMagic
	}
	return rd, nil
}

func (rd *Reader) skipUnread() error {
	skip, pad := rd.nb, rd.pad
	rd.nb, rd.pad = 0, 0
	if _, err := io.CopyN(io.Discard, rd.r, skip); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrTruncated
		}
		return err
	}
	if pad > 0 {
		// Some writers omit the pad byte after the final file in the archive.
		if _, err := rd.r.ReadByte(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}

// Next skips to the next file in the archive file.
// Returns a Header which contains the metadata about the
// file in the archive. io.EOF is returned at the end of the input.
func (rd *Reader) Next() (*Header, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	header, err := rd.next()
	if err != nil {
		rd.err = err
		return nil, err
	}
	return header, nil
}

func (rd *Reader) next() (*Header, error) {
	if err := rd.skipUnread(); err != nil {
		return nil, err
	}

	headerBuf := make([]byte, HEADER_BYTE_SIZE)
	if _, err := io.ReadFull(rd.r, headerBuf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}

	header, err := DecodeHeader(headerBuf)
	if err != nil {
		return nil, err
	}
	rd.nb = header.Size
	rd.pad = padding(header.Size)
	return header, nil
}

// NextMember advances to the next file in the archive and reads its entire data section. Unlike
// Next, it never returns a file whose data section is incomplete: if the archive ends early it
// returns ErrTruncated and no member.
func (rd *Reader) NextMember() (*Member, error) {
	header, err := rd.Next()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, rd, header.Size); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrTruncated
		}
		rd.err = err
		return nil, err
	}
	return &Member{Header: *header, Data: buf.Bytes()}, nil
}

// Read reads data from the current entry in the archive.
func (rd *Reader) Read(b []byte) (n int, err error) {
	if rd.nb == 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > rd.nb {
		b = b[0:rd.nb]
	}
	n, err = rd.r.Read(b)
	rd.nb -= int64(n)
	if errors.Is(err, io.EOF) && rd.nb > 0 {
		rd.nb, rd.pad = 0, 0
		rd.err = ErrTruncated
		return n, ErrTruncated
	}

	return
}

// ReadAll reads every file in the archive read from r, in the order they appear.
func ReadAll(r io.Reader) ([]*Member, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	var members []*Member
	for {
		m, err := rd.NextMember()
		if err == io.EOF {
			return members, nil
		}
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
}
