// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package probe reads the fixed size binary header expected by the FIFO
// probe: two little-endian unsigned 32 bit integers, pid and len.
//
// Note that the URL writers emit newline delimited text, not this header,
// so a probe reading from a URL writer decodes the first eight bytes of the
// first URL. The two formats have always disagreed and both are retained
// as is.
package probe

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"cloudeng.io/errors"
)

// HeaderSize is the number of bytes decoded into a Header.
const HeaderSize = 8

// NativeIntSize is the size in bytes of the platform's int type.
const NativeIntSize = strconv.IntSize / 8

// ReadSize is the number of bytes requested by Read, twice the
// platform's native int size.
const ReadSize = 2 * NativeIntSize

// ErrShortHeader is returned when fewer than HeaderSize bytes are
// available.
var ErrShortHeader = errors.New("short header")

// Header is the record read by the probe.
type Header struct {
	PID uint32
	Len uint32
}

// String implements fmt.Stringer.
func (h Header) String() string {
	return fmt.Sprintf("pid: %d, len: %d", h.PID, h.Len)
}

// Read reads at least HeaderSize and at most ReadSize bytes from rd and
// returns the bytes read. A stream that ends before HeaderSize bytes are
// read results in ErrShortHeader along with whatever was read.
func Read(rd io.Reader) ([]byte, error) {
	buf := make([]byte, ReadSize)
	n, err := io.ReadAtLeast(rd, buf, HeaderSize)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return buf[:n], fmt.Errorf("%w: read %d of %d bytes", ErrShortHeader, n, HeaderSize)
	}
	return buf[:n], err
}

// Decode decodes the first HeaderSize bytes of buf.
func Decode(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(buf))
	}
	return Header{
		PID: binary.LittleEndian.Uint32(buf[0:4]),
		Len: binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}

// Encode returns the little-endian encoding of h, it is the inverse of
// Decode.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.PID)
	binary.LittleEndian.PutUint32(buf[4:8], h.Len)
	return buf
}
