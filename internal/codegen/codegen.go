// Package codegen issues the short human-shareable codes used for
// tutors and courses. Generation is pure generate-and-check: the
// caller persists the chosen code under a unique constraint, which
// stays the final arbiter against concurrent generation.
package codegen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

// Alphabet drops the characters that are easy to misread when a code
// is passed around by hand (0/O, 1/I).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultMaxAttempts bounds the generate-and-check loop. The code
// space (32^6) is large relative to any realistic entity count, so
// hitting the cap means something is wrong with the store, not bad luck.
const DefaultMaxAttempts = 32

// ErrSpaceExhausted is returned when no free code was found within the
// attempt budget.
var ErrSpaceExhausted = errors.New("code space exhausted")

// Namespace identifies an independent uniqueness domain for codes.
type Namespace struct {
	name   string
	length int
}

var (
	// TutorCodes is the namespace for tutor codes.
	TutorCodes = Namespace{name: "tutor-code", length: 6}

	// CourseCodes is the namespace for course join codes.
	CourseCodes = Namespace{name: "course-code", length: 6}
)

// Name returns the namespace name, used in logs and errors.
func (n Namespace) Name() string { return n.name }

// Length returns the code length for the namespace.
func (n Namespace) Length() int { return n.length }

// Valid reports whether s is a canonical code for the namespace:
// right length, alphabet characters only.
func (n Namespace) Valid(s string) bool {
	if len(s) != n.length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

// Canonicalize normalizes a code for comparison. Codes are compared
// case-insensitively, so both generation and lookup upper-case them.
func Canonicalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ExistsFunc probes the namespace's unique index for a candidate.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator draws candidate codes until a free one is found.
type Generator struct {
	maxAttempts int
}

// NewGenerator creates a generator with the default attempt budget.
func NewGenerator() *Generator {
	return &Generator{maxAttempts: DefaultMaxAttempts}
}

// Generate returns a code that was free in ns at probe time.
// Returns ErrSpaceExhausted once the attempt budget is spent.
func (g *Generator) Generate(ctx context.Context, ns Namespace, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code, err := draw(ns.length)
		if err != nil {
			return "", fmt.Errorf("draw candidate: %w", err)
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check %s candidate: %w", ns.name, err)
		}

		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("%s: %w after %d attempts", ns.name, ErrSpaceExhausted, g.maxAttempts)
}

// draw picks length characters uniformly from the alphabet.
func draw(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	// len(Alphabet) is 32, so masking the low 5 bits keeps the draw uniform.
	for i := range buf {
		buf[i] = Alphabet[buf[i]&31]
	}

	return string(buf), nil
}
