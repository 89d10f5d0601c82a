package ar

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic indicates that the input is not an archive because it does not begin with the
	// string "!<arch>\n" (including when it is shorter than 8 bytes).
	ErrBadMagic = errors.New("ar: invalid global header")

	// ErrBadTerminator indicates that a file header does not end with "`\n".
	ErrBadTerminator = errors.New("ar: invalid file header terminator")

	// ErrBadNumber indicates that a numeric header field holds something other than digits, or that
	// a negative number was given for one.
	ErrBadNumber = errors.New("ar: invalid numeric field")

	// ErrFieldTooLong indicates that a header value does not fit in its fixed-width field.
	ErrFieldTooLong = errors.New("ar: field too long")

	// ErrBadName indicates that a file name contains bytes other than printable ASCII, or ends with a
	// space.
	ErrBadName = errors.New("ar: invalid file name")

	// ErrTruncated indicates that the archive ended in the middle of a file header or data section.
	ErrTruncated = errors.New("ar: archive truncated")

	ErrWriteTooLong  = errors.New("ar: write too long")
	ErrWriteTooShort = errors.New("ar: missing bytes in data section")
	ErrWriterClosed  = errors.New("ar: write to closed writer")
)

// HeaderError indicates a problem with one field of a file header.
type HeaderError struct {
	Field string
	Value string
	Err   error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Field, e.Value)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}
