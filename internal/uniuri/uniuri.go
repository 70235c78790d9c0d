package uniuri

import (
	"crypto/rand"
	"path/filepath"
	"strings"
)

const (
	// StdLen gives ~95 bits of entropy with StdChars.
	StdLen = 16

	// chunk is how many random bytes are read per round.
	chunk = 64
)

// StdChars is the alphabet of New.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// LowerChars is a case-insensitive alphabet, safe on any file system.
var LowerChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen over StdChars.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of length over StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of length over chars.
// Bytes above the largest multiple of len(chars) are dropped to avoid modulo bias.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 { //nolint:mnd
		panic("uniuri: wrong charset length for NewLenChars")
	}

	limit := 256 - (256 % clen) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, chunk)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) >= limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

// FileName returns a random lower case file name keeping the extension of original.
func FileName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) { //nolint:mnd
		ext = ""
	}

	return NewLenChars(24, LowerChars) + ext //nolint:mnd
}
