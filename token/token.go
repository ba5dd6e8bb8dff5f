package token

import (
	"strings"
	"unicode/utf8"

	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/model"
	"github.com/kondzio13/alis/numeral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrMalformedToken = errors.New("malformed token")

func FromNote(n model.Note) model.Token {
	return model.Token{
		Start: numeral.Encode(n.Start),
		Pitch: numeral.ShiftPitch(n.Pitch),
		End:   numeral.Encode(n.End),
	}
}

func Format(t model.Token) string {
	return t.Start + constants.FieldSeparator + string(t.Pitch) + constants.FieldSeparator + t.End
}

// Serialize writes one solo's notes in the order given, each token
// followed by a space. Notes whose pitch would shift onto a separator are
// left out.
func Serialize(notes []model.Note) string {
	var sb strings.Builder
	for _, n := range notes {
		if !numeral.IsSeparatorSafe(n.Pitch) {
			logrus.WithFields(logrus.Fields{"pitch": n.Pitch, "start": n.Start}).Warn("Skipping note with unencodable pitch")
			continue
		}
		sb.WriteString(Format(FromNote(n)))
		sb.WriteString(constants.NoteSeparator)
	}
	return sb.String()
}

// Corpus joins serialized solos into a training text: every solo is
// preceded by the leading marker and the text ends with a bare boundary.
func Corpus(solos []string) string {
	var sb strings.Builder
	for _, solo := range solos {
		sb.WriteString(constants.LeadingMarker)
		sb.WriteString(solo)
	}
	sb.WriteString(constants.SoloBoundary)
	return sb.String()
}

// StripTags isolates the first solo of a sample: the leading marker is
// removed and everything from the next boundary on is cut. A sample with no
// closing boundary is taken whole.
func StripTags(sample string) string {
	text := strings.TrimPrefix(sample, constants.LeadingMarker)
	if idx := strings.Index(text, constants.SoloBoundary); idx >= 0 {
		text = text[:idx]
	}
	return text
}

func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// Tokenize splits on ASCII whitespace only. Pitch 107 shifts to U+0085,
// which unicode counts as a space.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isASCIISpace)
}

func ParseToken(s string) (model.Token, error) {
	fields := strings.Split(s, constants.FieldSeparator)
	if len(fields) != 3 {
		return model.Token{}, errors.Wrapf(ErrMalformedToken, "%q has %d fields", s, len(fields))
	}
	if utf8.RuneCountInString(fields[1]) != 1 {
		return model.Token{}, errors.Wrapf(ErrMalformedToken, "%q pitch field", s)
	}
	pitch, _ := utf8.DecodeRuneInString(fields[1])
	return model.Token{Start: fields[0], Pitch: pitch, End: fields[2]}, nil
}

func ToNote(t model.Token) (model.Note, error) {
	start, err := numeral.Decode(t.Start)
	if err != nil {
		return model.Note{}, errors.Wrap(ErrMalformedToken, err.Error())
	}
	pitch, err := numeral.UnshiftPitch(t.Pitch)
	if err != nil {
		return model.Note{}, errors.Wrap(ErrMalformedToken, err.Error())
	}
	end, err := numeral.Decode(t.End)
	if err != nil {
		return model.Note{}, errors.Wrap(ErrMalformedToken, err.Error())
	}
	if end < start {
		return model.Note{}, errors.Wrapf(ErrMalformedToken, "ends at %d before it starts at %d", end, start)
	}
	return model.Note{Start: start, Pitch: pitch, End: end}, nil
}

func ParseNote(s string) (model.Note, error) {
	t, err := ParseToken(s)
	if err != nil {
		return model.Note{}, err
	}
	return ToNote(t)
}

// Parse decodes every token of a solo text. Tokens that do not parse are
// skipped; generated text often ends in a half written token.
func Parse(text string) []model.Note {
	var notes []model.Note
	for _, tok := range Tokenize(text) {
		n, err := ParseNote(tok)
		if err != nil {
			logrus.WithField("token", tok).WithError(err).Warn("Skipping token")
			continue
		}
		notes = append(notes, n)
	}
	return notes
}
