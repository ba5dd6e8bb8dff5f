package numeral

import (
	"github.com/kondzio13/alis/constants"
	"github.com/pkg/errors"
)

func ShiftPitch(pitch uint8) rune {
	return rune(int(pitch) + constants.PitchOffset)
}

func UnshiftPitch(r rune) (uint8, error) {
	p := int(r) - constants.PitchOffset
	if p < 0 || p > constants.MaxPitch {
		return 0, errors.Wrapf(ErrInvalidPitch, "%q", r)
	}
	return uint8(p), nil
}

// IsSeparatorSafe reports whether the shifted character for pitch can sit
// inside a token. The lowest pitches shift onto control characters, the
// space note separator and the '!' field separator.
func IsSeparatorSafe(pitch uint8) bool {
	r := ShiftPitch(pitch)
	return r > '!' && r != '#' && pitch <= constants.MaxPitch
}
