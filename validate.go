package mdhtml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// InputError locates the first offending byte of rejected input.
type InputError struct {
	Offset int
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v at byte %d", e.Err, e.Offset)
}

func (e *InputError) Unwrap() error { return e.Err }

// ValidateInput returns an error if the input is not valid UTF-8 or appears
// binary: it contains a NUL byte, or at least maxControlPct percent of a
// sample of minBinarySample bytes or more are control characters.
func ValidateInput(src []byte) error {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return &InputError{Offset: i, Err: ErrInvalidUTF8}
		}
		i += size
	}
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return &InputError{Offset: i, Err: ErrBinaryInput}
	}
	if len(src) < minBinarySample {
		return nil
	}
	control, first := 0, -1
	for i, r := range string(src) {
		if isControlRune(r) {
			if first < 0 {
				first = i
			}
			control++
		}
	}
	if control*100 >= len(src)*maxControlPct {
		return &InputError{Offset: first, Err: ErrBinaryInput}
	}
	return nil
}

func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func isControlRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return r < 0x20 || r == 0x7F
}

// sanitize drops control characters other than line endings and tabs.
func sanitize(src string) string {
	return strings.Map(func(r rune) rune {
		if isControlRune(r) {
			return -1
		}
		return r
	}, src)
}
