// Package roomcode implements the Room Code Allocator: 6-character codes
// drawn from a 32-symbol alphabet that excludes visually ambiguous glyphs
// (0/O/1/I), generalizing the teacher's randCode helper from
// internal/room/manager.go to the shared cryptographic Random Source and
// adding the collision-retry contract the specification requires.
package roomcode

import (
	"roomserver/internal/randsrc"
	"roomserver/internal/shared"
	"strings"
)

// Alphabet is the 32-symbol code alphabet, excluding 0, O, 1 and I.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the fixed code length.
const Length = 6

const maxAttempts = 10

// Exists reports whether code is already present in some namespace (a
// registry). Implemented by registry.Registry[T].Has.
type Exists func(code string) bool

// Generate draws one candidate code, independent of collision checking.
func Generate() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[randsrc.Intn(len(Alphabet))]
	}
	return string(b)
}

// Allocate draws codes until it finds one absent from exists, retrying up
// to 10 times, per §4.1. Returns shared.ErrRoomCodeCollision on exhaustion.
func Allocate(exists Exists) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := Generate()
		if !exists(code) {
			return code, nil
		}
	}
	return "", shared.ErrRoomCodeCollision
}

// Canonicalize uppercases a caller-supplied code, since codes are
// case-insensitive but stored/looked-up in uppercase form.
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
