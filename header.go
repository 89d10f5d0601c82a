package ar

import (
	"strconv"
	"strings"
	"time"
)

// DecodeHeader parses the fixed-size file header at the start of b.
//
// Trailing spaces are stripped from the name and from numeric fields; a numeric field made up
// entirely of spaces decodes as zero. Any other non-digit byte in a numeric field is an error.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) < HEADER_BYTE_SIZE {
		return nil, ErrTruncated
	}
	b = b[:HEADER_BYTE_SIZE]
	if fmag := string(b[HEADER_BYTE_SIZE-fmagWidth:]); fmag != HEADER_TERMINATOR {
		return nil, &HeaderError{Field: "terminator", Value: fmag, Err: ErrBadTerminator}
	}

	d := decoder{s: slicer(b)}
	hdr := &Header{}
	hdr.Name = d.string(nameWidth)
	hdr.ModTime = time.Unix(d.number("date", dateWidth, 10), 0)
	hdr.Uid = int(d.number("uid", uidWidth, 10))
	hdr.Gid = int(d.number("gid", gidWidth, 10))
	hdr.Mode = d.number("mode", modeWidth, 8)
	hdr.Size = d.number("size", sizeWidth, 10)
	if d.err != nil {
		return nil, d.err
	}
	return hdr, nil
}

// EncodeHeader formats hdr as a fixed-size file header. Every field is left-justified and padded
// with spaces. A zero ModTime is written as the epoch.
//
// Names must be printable ASCII and must not end with a space, which would be lost as padding;
// other names fail with ErrBadName. Names longer than 16 bytes fail with ErrFieldTooLong.
func EncodeHeader(hdr *Header) ([]byte, error) {
	if err := checkName(hdr.Name); err != nil {
		return nil, err
	}
	var modTime int64
	if !hdr.ModTime.IsZero() {
		modTime = hdr.ModTime.Unix()
	}

	b := make([]byte, HEADER_BYTE_SIZE)
	e := encoder{s: slicer(b)}
	e.string("name", nameWidth, hdr.Name)
	e.number("date", dateWidth, modTime, 10)
	e.number("uid", uidWidth, int64(hdr.Uid), 10)
	e.number("gid", gidWidth, int64(hdr.Gid), 10)
	e.number("mode", modeWidth, hdr.Mode, 8)
	e.number("size", sizeWidth, hdr.Size, 10)
	e.string("terminator", fmagWidth, HEADER_TERMINATOR)
	if e.err != nil {
		return nil, e.err
	}
	return b, nil
}

func checkName(name string) error {
	for i := 0; i < len(name); i++ {
		if name[i] < ' ' || name[i] > '~' {
			return &HeaderError{Field: "name", Value: name, Err: ErrBadName}
		}
	}
	if strings.HasSuffix(name, " ") {
		return &HeaderError{Field: "name", Value: name, Err: ErrBadName}
	}
	return nil
}

// decoder reads successive fields from a header, keeping the first error it encounters.
type decoder struct {
	s   slicer
	err error
}

func (d *decoder) string(width int) string {
	return strings.TrimRight(string(d.s.next(width)), " ")
}

func (d *decoder) number(field string, width int, base int) int64 {
	b := d.s.next(width)
	if d.err != nil {
		return 0
	}
	s := strings.TrimRight(string(b), " ")
	if s == "" {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] >= '0'+byte(base) {
			d.err = &HeaderError{Field: field, Value: string(b), Err: ErrBadNumber}
			return 0
		}
	}
	// At most 12 digits, so this cannot overflow.
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		d.err = &HeaderError{Field: field, Value: string(b), Err: ErrBadNumber}
		return 0
	}
	return n
}

// encoder writes successive fields into a header, keeping the first error it encounters.
type encoder struct {
	s   slicer
	err error
}

func (e *encoder) string(field string, width int, str string) {
	b := e.s.next(width)
	if e.err != nil {
		return
	}
	if len(str) > width {
		e.err = &HeaderError{Field: field, Value: str, Err: ErrFieldTooLong}
		return
	}
	n := copy(b, str)
	for i := n; i < len(b); i++ {
		b[i] = ' '
	}
}

func (e *encoder) number(field string, width int, x int64, base int) {
	if x < 0 {
		e.s.next(width)
		if e.err == nil {
			e.err = &HeaderError{Field: field, Value: strconv.FormatInt(x, base), Err: ErrBadNumber}
		}
		return
	}
	e.string(field, width, strconv.FormatInt(x, base))
}
