// Package id generates lexicographically sortable identifiers.
//
// An ID is 26 Crockford base32 characters: a 48-bit millisecond timestamp
// followed by 80 random bits (the ULID layout). IDs handed to clients are
// display tokens; nothing looks them up.
package id

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"time"
)

// crockford omits I, L, O and U.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	// Length is the number of characters in an ID.
	Length = 26

	timeChars = 10
	randBytes = 10
)

var ErrInvalid = errors.New("id: invalid identifier")

// New returns an ID for the current time.
func New() string {
	s, err := NewAt(time.Now(), rand.Reader)
	if err != nil {
		// crypto/rand never fails on supported platforms; keep the ID
		// unique enough with a nanosecond-derived tail.
		s, _ = NewAt(time.Now(), nanoReader{})
	}
	return s
}

// NewAt returns an ID for t drawing randomness from r.
func NewAt(t time.Time, r io.Reader) (string, error) {
	var entropy [randBytes]byte
	if _, err := io.ReadFull(r, entropy[:]); err != nil {
		return "", err
	}

	var out [Length]byte

	ms := uint64(t.UnixMilli())
	for i := timeChars - 1; i >= 0; i-- {
		out[i] = crockford[ms&0x1F]
		ms >>= 5
	}

	// 80 random bits are exactly 16 five-bit groups.
	var acc uint64
	bits := 0
	pos := timeChars
	for _, b := range entropy {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = crockford[(acc>>uint(bits))&0x1F]
			pos++
		}
	}

	return string(out[:]), nil
}

// Time returns the creation time encoded in id, with millisecond precision.
func Time(id string) (time.Time, error) {
	if len(id) != Length {
		return time.Time{}, ErrInvalid
	}
	var ms uint64
	for i := range timeChars {
		v := strings.IndexByte(crockford, id[i])
		if v < 0 {
			return time.Time{}, ErrInvalid
		}
		ms = ms<<5 | uint64(v)
	}
	return time.UnixMilli(int64(ms)), nil
}

// Valid reports whether s is a well-formed ID.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := range len(s) {
		if strings.IndexByte(crockford, s[i]) < 0 {
			return false
		}
	}
	return true
}

type nanoReader struct{}

func (nanoReader) Read(p []byte) (int, error) {
	n := uint64(time.Now().UnixNano())
	for i := range p {
		p[i] = byte(n >> (8 * (i % 8)))
	}
	return len(p), nil
}
