package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Short code format constraints: PREFIX-TYPE-NNNN with a 2-8 uppercase letter
// prefix, a single type letter, and exactly four digits.
const (
	MinPrefixLen = 2
	MaxPrefixLen = 8

	// maxShortCodeNumber guards against garbage counters during recovery.
	maxShortCodeNumber = 1_000_000
)

// ShortCode is the human-facing document code PREFIX-TYPE-NNNN, assigned
// monotonically per type per workspace and never reused.
type ShortCode struct {
	Prefix string
	Type   DocumentType
	Number int
}

// String renders the code in its canonical PREFIX-T-NNNN form.
func (c ShortCode) String() string {
	return fmt.Sprintf("%s-%s-%04d", c.Prefix, c.Type.CodeLetter(), c.Number)
}

// ParseShortCode parses and validates a short code string.
func ParseShortCode(s string) (ShortCode, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return ShortCode{}, fmt.Errorf("%w: %q", ErrInvalidShortCode, s)
	}

	prefix, letter, digits := parts[0], parts[1], parts[2]
	if !ValidPrefix(prefix) {
		return ShortCode{}, fmt.Errorf("%w: bad prefix in %q", ErrInvalidShortCode, s)
	}

	docType, ok := TypeFromCodeLetter(letter)
	if !ok {
		return ShortCode{}, fmt.Errorf("%w: bad type letter in %q", ErrInvalidShortCode, s)
	}

	if len(digits) != 4 || !allDigits(digits) {
		return ShortCode{}, fmt.Errorf("%w: bad number in %q", ErrInvalidShortCode, s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n > maxShortCodeNumber {
		return ShortCode{}, fmt.Errorf("%w: bad number in %q", ErrInvalidShortCode, s)
	}

	return ShortCode{Prefix: prefix, Type: docType, Number: n}, nil
}

// ValidShortCode reports whether s parses as a short code.
func ValidShortCode(s string) bool {
	_, err := ParseShortCode(s)
	return err == nil
}

// ValidPrefix reports whether s is a legal short-code prefix: 2-8 uppercase
// ASCII letters.
func ValidPrefix(s string) bool {
	if len(s) < MinPrefixLen || len(s) > MaxPrefixLen {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
