// Package refstring turns user-typed text into page reference strings and
// checks frame counts before they reach the simulator.
package refstring

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"unicode"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
)

// DefaultMaxFrames is the largest frame count offered to users.
const DefaultMaxFrames = 10

var (
	// ErrEmpty is returned when the text holds no page reference.
	ErrEmpty = errors.New("reference string is empty")

	// ErrBadToken is returned when a token is not a non-negative integer.
	ErrBadToken = errors.New("invalid page reference")

	// ErrFrameCount is returned when a frame count is out of range.
	ErrFrameCount = errors.New("invalid frame count")

	// ErrRandomRange is returned when a random string cannot be generated
	// with the requested length or page range.
	ErrRandomRange = errors.New("invalid random reference string range")
)

// Parse splits text on whitespace and commas and converts every token into a
// page.
func Parse(text string) ([]replacement.Page, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	if len(tokens) == 0 {
		return nil, ErrEmpty
	}

	refs := make([]replacement.Page, 0, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w %q at position %d", ErrBadToken, tok, i+1)
		}

		refs = append(refs, replacement.Page(n))
	}

	return refs, nil
}

// Format writes refs back as space-separated text.
func Format(refs []replacement.Page) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(int(p))
	}

	return strings.Join(parts, " ")
}

// ValidateFrameCount checks that 1 <= n <= max.
func ValidateFrameCount(n, max int) error {
	if n < 1 || n > max {
		return fmt.Errorf("%w: %d, must be between 1 and %d",
			ErrFrameCount, n, max)
	}

	return nil
}

// ParseFrameCount converts text into a frame count and validates it.
func ParseFrameCount(text string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrFrameCount, text)
	}

	err = ValidateFrameCount(n, max)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// Random generates a reference string of the given length with pages in
// [0, maxPage]. The same seed always gives the same string.
func Random(length, maxPage int, seed int64) ([]replacement.Page, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length %d is negative", ErrRandomRange, length)
	}

	if maxPage < 0 {
		return nil, fmt.Errorf("%w: largest page %d is negative",
			ErrRandomRange, maxPage)
	}

	rng := rand.New(rand.NewSource(seed))

	refs := make([]replacement.Page, length)
	for i := range refs {
		refs[i] = replacement.Page(rng.Intn(maxPage + 1))
	}

	return refs, nil
}
