package room

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I) so
// codes stay readable when shared over URLs or QR images.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// Code is the six-character public identifier of a room. A non-zero
// Code always satisfies the length and alphabet rules; construct one
// via ParseCode or GenerateCode.
type Code struct {
	value string
}

// ParseCode validates raw against the fixed length and alphabet.
// Matching is case-sensitive: lowercase input is rejected rather than
// silently folded.
func ParseCode(raw string) (Code, error) {
	if strings.TrimSpace(raw) == "" {
		return Code{}, fmt.Errorf("%w: room code is empty", ErrInvalidCode)
	}
	if len(raw) != codeLength {
		return Code{}, fmt.Errorf("%w: room code must be %d characters", ErrInvalidCode, codeLength)
	}
	for _, c := range raw {
		if !strings.ContainsRune(codeAlphabet, c) {
			return Code{}, fmt.Errorf("%w: room code contains invalid character %q", ErrInvalidCode, c)
		}
	}
	return Code{value: raw}, nil
}

// GenerateCode draws six characters uniformly from the alphabet using
// crypto/rand. Codes travel over untrusted channels, so guessing
// resistance matters more than speed here.
func GenerateCode() Code {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("room: crypto/rand failed: %v", err))
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return Code{value: string(b)}
}

func (c Code) String() string { return c.value }

// IsZero reports whether c is the uninitialized zero value.
func (c Code) IsZero() bool { return c.value == "" }
