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
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeader(t *testing.T) {
	f, err := os.Open("./fixtures/hello.a")
	require.NoError(t, err)
	defer f.Close()

	reader, err := NewReader(f)
	require.NoError(t, err)
	header, err := reader.Next()
	require.NoError(t, err)

	assert.Equal(t, "hello.txt", header.Name)
	assert.Equal(t, time.Unix(1361157466, 0), header.ModTime)
	assert.Equal(t, 501, header.Uid)
	assert.Equal(t, 20, header.Gid)
	assert.Equal(t, int64(0100644), header.Mode)
	assert.Equal(t, int64(13), header.Size)

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	require.NoError(t, err)
	assert.Equal(t, "Hello world!\n", buf.String())

	header, err = reader.Next()
	assert.Nil(t, header)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadExample(t *testing.T) {
	archive := "!<arch>\n" + string(rawHeader("hello.o", "0", "0", "0", "644", "3", "`\n")) + "\x01\x02\x03\n"
	require.Len(t, archive, 72)

	members, err := ReadAll(strings.NewReader(archive))
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "hello.o", members[0].Name)
	assert.Equal(t, int64(3), members[0].Size)
	assert.Equal(t, []byte{1, 2, 3}, members[0].Data)
}

func TestBadMagic(t *testing.T) {
	for _, tc := range []struct {
		Description string
		Archive     string
	}{
		{"empty", ""},
		{"short", "!<arch>"},
		{"wrong", "!<arhc>\n"},
		{"thin archive", "!<thin>\n"},
		{"tar file", "hello.txt\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"},
	} {
		t.Run(tc.Description, func(t *testing.T) {
			reader, err := NewReader(strings.NewReader(tc.Archive))
			assert.Nil(t, reader)
			assert.ErrorIs(t, err, ErrBadMagic)

			members, err := ReadAll(strings.NewReader(tc.Archive))
			assert.Empty(t, members)
			assert.ErrorIs(t, err, ErrBadMagic)
		})
	}
}

func TestEmptyArchive(t *testing.T) {
	reader, err := NewReader(strings.NewReader(GLOBAL_HEADER))
	require.NoError(t, err)
	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
	// The end of the archive is final.
	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMembersInOrder(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)
	names := []string{"a.o", "b.o", "c.o", "d.o", "e.o"}
	for i, name := range names {
		require.NoError(t, writer.Append(&Member{
			Header: Header{Name: name, ModTime: time.Unix(int64(i), 0), Mode: 0644},
			Data:   bytes.Repeat([]byte{byte('a' + i)}, i+1),
		}))
	}
	require.NoError(t, writer.Close())

	reader, err := NewReader(&buf)
	require.NoError(t, err)
	for i, name := range names {
		// Skip the data sections of alternate files without reading them.
		header, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, name, header.Name)
		assert.Equal(t, int64(i+1), header.Size)
		if i%2 == 0 {
			data, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, bytes.Repeat([]byte{byte('a' + i)}, i+1), data)
		}
	}
	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTruncatedHeader(t *testing.T) {
	archive := GLOBAL_HEADER + string(rawHeader("hello.o", "0", "0", "0", "644", "3", "`\n"))[:30]
	reader, err := NewReader(strings.NewReader(archive))
	require.NoError(t, err)
	header, err := reader.Next()
	assert.Nil(t, header)
	assert.ErrorIs(t, err, ErrTruncated)
	// Errors are sticky.
	_, err = reader.Next()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestTruncatedData(t *testing.T) {
	archive := GLOBAL_HEADER + string(rawHeader("hello.o", "0", "0", "0", "644", "10", "`\n")) + "abc"

	members, err := ReadAll(strings.NewReader(archive))
	assert.Nil(t, members)
	assert.ErrorIs(t, err, ErrTruncated)

	reader, err := NewReader(strings.NewReader(archive))
	require.NoError(t, err)
	member, err := reader.NextMember()
	assert.Nil(t, member)
	assert.ErrorIs(t, err, ErrTruncated)

	// Streaming reads report the truncation too.
	reader, err = NewReader(strings.NewReader(archive))
	require.NoError(t, err)
	_, err = reader.Next()
	require.NoError(t, err)
	_, err = io.ReadAll(reader)
	assert.ErrorIs(t, err, ErrTruncated)

	// As does skipping over the data section.
	reader, err = NewReader(strings.NewReader(archive))
	require.NoError(t, err)
	_, err = reader.Next()
	require.NoError(t, err)
	_, err = reader.Next()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadBadHeader(t *testing.T) {
	archive := GLOBAL_HEADER + string(rawHeader("hello.o", "0", "0", "0", "644", "3", "\n\n")) + "abc\n"
	reader, err := NewReader(strings.NewReader(archive))
	require.NoError(t, err)
	_, err = reader.Next()
	assert.ErrorIs(t, err, ErrBadTerminator)

	archive = GLOBAL_HEADER + string(rawHeader("hello.o", "0", "0", "0", "644", "three", "`\n")) + "abc\n"
	_, err = ReadAll(strings.NewReader(archive))
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestMissingFinalPadByte(t *testing.T) {
	archive := GLOBAL_HEADER + string(rawHeader("hello.o", "0", "0", "0", "644", "3", "`\n")) + "abc"
	members, err := ReadAll(strings.NewReader(archive))
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, []byte("abc"), members[0].Data)
}
