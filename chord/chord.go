package chord

import (
	"strings"

	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
)

var ErrInvalidChord = errors.New("invalid chord")

var ErrInvalidBars = errors.New("a chord lasts 1 to 4 bars")

var Notes = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// semitones above the root and whether the chord is minor, in chart order
var pattern = []struct {
	offset int
	minor  bool
}{
	{0, false},
	{2, true},
	{4, true},
	{3, false},
	{5, false},
	{7, false},
	{9, true},
	{11, false},
}

type Entry struct {
	Root   string
	Chords []model.ChordSymbol
}

func (e Entry) Has(symbol model.ChordSymbol) bool {
	for _, c := range e.Chords {
		if c == symbol {
			return true
		}
	}
	return false
}

func (e Entry) HasAll(symbols []model.ChordSymbol) bool {
	for _, s := range symbols {
		if !e.Has(s) {
			return false
		}
	}
	return true
}

// Chart maps each of the 12 roots, in Notes order, to the chords that fit
// it.
type Chart [12]Entry

func BuildChart() Chart {
	var chart Chart
	for i, root := range Notes {
		entry := Entry{Root: root}
		for _, p := range pattern {
			symbol := Notes[(i+p.offset)%12]
			if p.minor {
				symbol = strings.ToLower(symbol)
			}
			entry.Chords = append(entry.Chords, symbol)
		}
		chart[i] = entry
	}
	return chart
}

// RootIndex finds a root by name, ignoring case.
func RootIndex(name string) (int, bool) {
	for i, n := range Notes {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// Parse validates a chord symbol and brings it to chart form. Uppercase is
// major, lowercase minor, a trailing "m" also marks minor ("Am" -> "a"),
// and "b" flattens any root but C and F.
func Parse(symbol string) (model.ChordSymbol, error) {
	s := strings.TrimSpace(symbol)
	if len(s) > 1 && strings.HasSuffix(s, "m") {
		s = strings.ToLower(s[:len(s)-1])
	}
	if len(s) == 0 || len(s) > 2 {
		return "", errors.Wrapf(ErrInvalidChord, "%q", symbol)
	}
	if !strings.ContainsRune("ABCDEFGabcdefg", rune(s[0])) {
		return "", errors.Wrapf(ErrInvalidChord, "%q has no root", symbol)
	}
	if len(s) == 2 {
		if s[1] != 'b' || strings.ContainsRune("CFcf", rune(s[0])) {
			return "", errors.Wrapf(ErrInvalidChord, "%q", symbol)
		}
	}
	return s, nil
}

func ParseAll(symbols []string) ([]model.ChordSymbol, error) {
	res := make([]model.ChordSymbol, 0, len(symbols))
	for _, s := range symbols {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

func NewProgressionEntry(symbol string, bars int) (model.ProgressionEntry, error) {
	c, err := Parse(symbol)
	if err != nil {
		return model.ProgressionEntry{}, err
	}
	if bars < 1 || bars > 4 {
		return model.ProgressionEntry{}, errors.Wrapf(ErrInvalidBars, "%v for %d bars", symbol, bars)
	}
	return model.ProgressionEntry{Chord: c, Bars: bars}, nil
}

// ParseProgression reads "C:2, am:2, F, G:1". Bars default to 1.
func ParseProgression(text string) (model.Progression, error) {
	var res model.Progression
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' }) {
		symbol, barsText, hasBars := strings.Cut(part, ":")
		bars := 1
		if hasBars {
			n, err := parseBars(barsText)
			if err != nil {
				return nil, errors.Wrapf(err, "%q", part)
			}
			bars = n
		}
		entry, err := NewProgressionEntry(symbol, bars)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

func parseBars(s string) (int, error) {
	if len(s) != 1 || s[0] < '1' || s[0] > '4' {
		return 0, ErrInvalidBars
	}
	return int(s[0] - '0'), nil
}

func Symbols(progression model.Progression) []model.ChordSymbol {
	res := make([]model.ChordSymbol, 0, len(progression))
	for _, p := range progression {
		res = append(res, p.Chord)
	}
	return res
}

// FormatProgression is the inverse of ParseProgression.
func FormatProgression(progression model.Progression) []string {
	res := make([]string, 0, len(progression))
	for _, p := range progression {
		res = append(res, p.Chord+":"+string(rune('0'+p.Bars)))
	}
	return res
}
