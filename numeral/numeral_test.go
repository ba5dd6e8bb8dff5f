package numeral

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEncodeKnownValues(t *testing.T) {
	cases := map[uint32]string{
		0:     "0",
		5:     "5",
		35:    "Z",
		36:    "10",
		40:    "14",
		3840:  "2YO",
		46655: "ZZZ",
		46656: "1000",
	}

	for tick, expected := range cases {
		name := fmt.Sprintf("encode %v", tick)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, Encode(tick))
		})
	}
}

func TestPositionalCarriesRedundantZero(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("0", positional(0))
	assert.Equal("05", positional(5))
	assert.Equal("014", positional(40))
}

func TestRoundTripThreeDigitRange(t *testing.T) {
	for tick := uint32(0); tick < 36*36*36; tick++ {
		decoded, err := Decode(Encode(tick))
		if err != nil || decoded != tick {
			t.Fatalf("tick %v: got %v, %v", tick, decoded, err)
		}
	}
}

func TestDecodeRejectsNonAlphabet(t *testing.T) {
	for _, digits := range []string{"", "a", "1-2", "Z!", " "} {
		t.Run(fmt.Sprintf("decode %q", digits), func(t *testing.T) {
			_, err := Decode(digits)
			assert.Equal(t, ErrInvalidDigit, errors.Cause(err))
		})
	}
}

func TestDecodeOverflow(t *testing.T) {
	_, err := Decode("ZZZZZZZ")
	assert.Equal(t, ErrInvalidDigit, errors.Cause(err))
}

func TestPitchShiftRoundTrip(t *testing.T) {
	for p := 0; p <= 127; p++ {
		pitch, err := UnshiftPitch(ShiftPitch(uint8(p)))
		assert.NoError(t, err)
		assert.Equal(t, uint8(p), pitch)
	}
}

func TestPitchShiftOffset(t *testing.T) {
	assert := assert.New(t)
	assert.Equal('V', ShiftPitch(60))
	assert.Equal('B', ShiftPitch(40))
}

func TestUnshiftOutOfRange(t *testing.T) {
	_, err := UnshiftPitch('\x05')
	assert.Equal(t, ErrInvalidPitch, errors.Cause(err))
	_, err = UnshiftPitch(rune(154))
	assert.Equal(t, ErrInvalidPitch, errors.Cause(err))
}

func TestSeparatorSafety(t *testing.T) {
	assert := assert.New(t)
	assert.False(IsSeparatorSafe(6)) // space
	assert.False(IsSeparatorSafe(7)) // '!'
	assert.False(IsSeparatorSafe(9)) // '#'
	assert.True(IsSeparatorSafe(8))
	assert.True(IsSeparatorSafe(40))
	assert.True(IsSeparatorSafe(127))
}
