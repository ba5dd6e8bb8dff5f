package numeral

import (
	"strconv"
	"strings"

	"github.com/kondzio13/alis/constants"
	"github.com/pkg/errors"
)

var ErrInvalidDigit = errors.New("invalid numeral digit")

var ErrInvalidPitch = errors.New("invalid pitch character")

const base = uint32(len(constants.NumeralDigits))

// positional writes n with the recursive division used by the corpus
// format: the terminating zero quotient is written out, so every value
// carries one redundant leading '0'.
func positional(n uint32) string {
	if n == 0 {
		return constants.NumeralDigits[:1]
	}
	return positional(n/base) + string(constants.NumeralDigits[n%base])
}

// Encode writes a tick as corpus digits: the positional form with its
// first character dropped, or "0" when nothing would remain.
func Encode(tick uint32) string {
	digits := positional(tick)[1:]
	if digits == "" {
		return "0"
	}
	return digits
}

// Decode reads corpus digits back into a tick. A literal '0' is restored in
// front of the digits before they are read as base 36.
func Decode(digits string) (uint32, error) {
	if digits == "" {
		return 0, errors.Wrap(ErrInvalidDigit, "empty numeral")
	}
	for _, r := range digits {
		if !strings.ContainsRune(constants.NumeralDigits, r) {
			return 0, errors.Wrapf(ErrInvalidDigit, "%q in %q", r, digits)
		}
	}
	n, err := strconv.ParseUint("0"+digits, int(base), 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDigit, "%q: %v", digits, err)
	}
	return uint32(n), nil
}
