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
	"errors"
	"fmt"
	"io"
)

// Writer provides sequential writing of an ar archive.
// An ar archive is sequence of header file pairs
// Call WriteHeader to begin writing a new file, then call Write to supply the file's data,
// or call Append to do both at once.
//
// Example:
//
//	archive := ar.NewWriter(writer)
//	header := new(ar.Header)
//	header.Size = 15 // bytes
//	if err := archive.WriteHeader(header); err != nil {
//		return err
//	}
//	io.Copy(archive, data)
//	archive.Close()
type Writer struct {
	// w is the underlying io.Writer to which the archive file is written.
	w io.Writer

	// closed is true if Close has been called on this Writer, or false if it has not.
	closed bool

	// wroteHeader is true if the archive header has been written to the underlying io.Writer, or
	// false if it has not yet.
	wroteHeader bool

	// nb is the number of bytes that have not yet been written (via Write) since the most
	// recent call to WriteHeader.
	nb int64

	// pad is the number of padding bytes still owed once the current data section is complete.
	pad int64

	// err is the first error returned by the underlying io.Writer. The archive is unusable once it is
	// set, so every subsequent operation returns it.
	err error
}

// NewWriter creates a new Writer that writes an ar archive to an underlying io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: w,
	}
}

func (aw *Writer) write(p []byte) (int, error) {
	if aw.closed {
		return 0, ErrWriterClosed
	}
	if err := aw.writeGlobalHeader(); err != nil {
		return 0, err
	}
	n, err := aw.w.Write(p)
	if err != nil {
		aw.err = err
	}
	return n, err
}

// Close finishes writing the archive, ensuring that a valid archive header has been written even if
// the archive contains no files, and flushes the underlying io.Writer if it supports flushing. It
// does not close the underlying io.Writer.
func (aw *Writer) Close() error {
	if aw.closed {
		return errors.New("ar: writer closed twice")
	}
	if aw.err != nil {
		aw.closed = true
		return aw.err
	}
	if aw.nb > 0 {
		return ErrWriteTooShort
	}
	err := aw.writeGlobalHeader()
	aw.closed = true
	if err != nil {
		return err
	}
	return aw.Flush()
}

// Flush flushes the underlying io.Writer if it has a Flush method (e.g. a *bufio.Writer).
func (aw *Writer) Flush() error {
	if f, ok := aw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Writes to the current entry in the ar archive
// Returns ErrWriteTooLong if more than header.Size
// bytes are written after a call to WriteHeader
func (aw *Writer) Write(b []byte) (n int, err error) {
	if aw.closed {
		return 0, ErrWriterClosed
	}
	if aw.err != nil {
		return 0, aw.err
	}
	if int64(len(b)) > aw.nb {
		b = b[0:aw.nb]
		err = ErrWriteTooLong
	}
	if len(b) == 0 {
		return 0, err
	}
	n, werr := aw.write(b)
	aw.nb -= int64(n)
	if werr != nil {
		return n, werr
	}

	if aw.nb == 0 && aw.pad > 0 { // data size must be aligned to an even byte
		aw.pad = 0
		if _, err := aw.write([]byte{'\n'}); err != nil {
			// Return n although we actually wrote n+1 bytes.
			// This is to make io.Copy() to work correctly.
			return n, err
		}
	}

	return
}

// writeGlobalHeader writes the ar header to the underlying io.Writer. This must only happen once,
// and must be the first write operation on the io.Writer.
func (aw *Writer) writeGlobalHeader() error {
	if aw.err != nil {
		return aw.err
	}
	if aw.wroteHeader {
		return nil
	}
	if _, err := aw.w.Write([]byte(GLOBAL_HEADER)); err != nil {
		aw.err = fmt.Errorf("ar: write archive header: %w", err)
		return aw.err
	}
	aw.wroteHeader = true
	return nil
}

// Writes the header to the underlying writer and prepares
// to receive the file payload. Nothing is written if the
// header cannot be encoded.
func (aw *Writer) WriteHeader(hdr *Header) error {
	if aw.closed {
		return ErrWriterClosed
	}
	if aw.err != nil {
		return aw.err
	}
	if aw.nb > 0 {
		return ErrWriteTooShort
	}
	header, err := EncodeHeader(hdr)
	if err != nil {
		return err
	}
	if _, err := aw.write(header); err != nil {
		return err
	}
	aw.nb = hdr.Size
	aw.pad = padding(hdr.Size)
	return nil
}

// Append writes a complete file to the archive. The size recorded in its header is the length of
// m.Data, regardless of m.Size.
func (aw *Writer) Append(m *Member) error {
	hdr := m.Header
	hdr.Size = int64(len(m.Data))
	if err := aw.WriteHeader(&hdr); err != nil {
		return err
	}
	_, err := aw.Write(m.Data)
	return err
}
