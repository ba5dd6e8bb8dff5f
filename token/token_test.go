package token

import (
	"testing"

	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	notes := []model.Note{
		{Start: 0, Pitch: 60, End: 480},
		{Start: 480, Pitch: 62, End: 3840},
	}
	assert.Equal(t, "0!V!DC DC!X!2YO ", Serialize(notes))
}

func TestSerializeSkipsUnsafePitches(t *testing.T) {
	notes := []model.Note{
		{Start: 0, Pitch: 7, End: 10},
		{Start: 0, Pitch: 40, End: 10},
	}
	assert.Equal(t, "0!B!A ", Serialize(notes))
}

func TestCorpus(t *testing.T) {
	assert.Equal(t, "### 0!V!A ### 0!X!A ###", Corpus([]string{"0!V!A ", "0!X!A "}))
	assert.Equal(t, "###", Corpus(nil))
}

func TestStripTags(t *testing.T) {
	cases := map[string]string{
		"### 0!V!A 1!W!B ### 2!X!C ###": "0!V!A 1!W!B ",
		"### 0!V!A 1!W!B":               "0!V!A 1!W!B",
		"0!V!A ###":                     "0!V!A ",
		"### ###":                       "",
	}
	for sample, expected := range cases {
		t.Run(sample, func(t *testing.T) {
			assert.Equal(t, expected, StripTags(sample))
		})
	}
}

func TestParseToken(t *testing.T) {
	tok, err := ParseToken("DC!V!2YO")
	require.NoError(t, err)
	assert.Equal(t, model.Token{Start: "DC", Pitch: 'V', End: "2YO"}, tok)

	for _, bad := range []string{"DC!V", "DC!!2YO", "DC!VW!2YO", "A!B!C!D"} {
		_, err := ParseToken(bad)
		assert.Equal(t, ErrMalformedToken, errors.Cause(err), bad)
	}
}

func TestParseNoteRejectsBadDigitsAndOrder(t *testing.T) {
	for _, bad := range []string{"dc!V!2YO", "DC!V!", "2YO!V!DC", "0!\x05!A"} {
		_, err := ParseNote(bad)
		assert.Equal(t, ErrMalformedToken, errors.Cause(err), bad)
	}
}

func TestParseSkipsTruncatedTail(t *testing.T) {
	notes := Parse("0!V!DC 1")
	assert.Equal(t, []model.Note{{Start: 0, Pitch: 60, End: 480}}, notes)
}

func TestParseKeepsHighPitchesWithUnicodeSpaceCharacter(t *testing.T) {
	notes := []model.Note{{Start: 0, Pitch: 107, End: 36}}
	assert.Equal(t, notes, Parse(Serialize(notes)))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	var notes []model.Note
	for i := uint32(0); i < 200; i++ {
		start := i * 487
		notes = append(notes, model.Note{Start: start, Pitch: uint8(40 + i%60), End: start + 1 + i*13})
	}
	text := StripTags(Corpus([]string{Serialize(notes)}))
	assert.Equal(t, notes, Parse(text))
}
