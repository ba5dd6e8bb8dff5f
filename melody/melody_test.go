package melody

import (
	"path/filepath"
	"testing"

	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteRow(track int, tick uint32, kind string, pitch string, vel string) model.Row {
	return model.Row{Track: track, Tick: tick, Type: kind, Values: []string{"0", pitch, vel}}
}

func TestFilterTrackAndEvents(t *testing.T) {
	rows := []model.Row{
		{Track: 0, Type: model.RowHeader, Values: []string{"1", "2", "960"}},
		{Track: 1, Type: model.RowStartTrack},
		noteRow(1, 0, model.RowNoteOn, "36", "90"),
		{Track: 2, Type: model.RowStartTrack},
		{Track: 2, Type: model.RowProgram, Values: []string{"0", "29"}},
		noteRow(2, 10, model.RowNoteOn, "60", "95"),
		noteRow(2, 20, model.RowNoteOn, "60", "0"),
		noteRow(2, 20, model.RowNoteOn, "62", "95"),
		noteRow(2, 30, model.RowNoteOff, "62", "0"),
	}

	events := FilterNoteEvents(FilterTrack(rows, 2))
	assert.Equal(t, []model.NoteEvent{
		{Tick: 10, Pitch: 60},
		{Tick: 20, Pitch: 60, IsOff: true},
		{Tick: 20, Pitch: 62},
		{Tick: 30, Pitch: 62, IsOff: true},
	}, events)
}

func TestPairNotesInterleaved(t *testing.T) {
	events := []model.NoteEvent{
		{Tick: 0, Pitch: 60},
		{Tick: 5, Pitch: 64},
		{Tick: 10, Pitch: 60, IsOff: true},
		{Tick: 15, Pitch: 64, IsOff: true},
		{Tick: 15, Pitch: 67},
		{Tick: 20, Pitch: 67, IsOff: true},
	}
	expected := []model.Note{
		{Start: 0, Pitch: 60, End: 10},
		{Start: 5, Pitch: 64, End: 15},
		{Start: 15, Pitch: 67, End: 20},
	}

	assert := assert.New(t)
	assert.Equal(expected, PairNotes(events))
	assert.Equal(expected, PairNotesStacked(events))
}

func TestPairNotesDoesNotMutateInput(t *testing.T) {
	events := []model.NoteEvent{{Tick: 0, Pitch: 60}, {Tick: 1, Pitch: 60, IsOff: true}}
	PairNotes(events)
	assert.Equal(t, []model.NoteEvent{{Tick: 0, Pitch: 60}, {Tick: 1, Pitch: 60, IsOff: true}}, events)
}

func TestPairNotesDropsUnmatched(t *testing.T) {
	events := []model.NoteEvent{
		{Tick: 0, Pitch: 60},
		{Tick: 5, Pitch: 62},
		{Tick: 10, Pitch: 62, IsOff: true},
	}
	assert.Equal(t, []model.Note{{Start: 5, Pitch: 62, End: 10}}, PairNotes(events))
	assert.Equal(t, []model.Note{{Start: 5, Pitch: 62, End: 10}}, PairNotesStacked(events))
}

// Overlapping same-pitch notes are where the two pairings part ways.
func TestPairNotesOverlapDivergence(t *testing.T) {
	events := []model.NoteEvent{
		{Tick: 0, Pitch: 60},
		{Tick: 10, Pitch: 60},
		{Tick: 20, Pitch: 60, IsOff: true},
		{Tick: 30, Pitch: 60, IsOff: true},
	}

	assert := assert.New(t)
	assert.Equal([]model.Note{
		{Start: 0, Pitch: 60, End: 10},
		{Start: 20, Pitch: 60, End: 30},
	}, PairNotes(events))
	assert.Equal([]model.Note{
		{Start: 0, Pitch: 60, End: 30},
		{Start: 10, Pitch: 60, End: 20},
	}, PairNotesStacked(events))
}

func TestEncodeNoMelody(t *testing.T) {
	rows := []model.Row{noteRow(1, 0, model.RowNoteOn, "60", "95")}
	_, err := Encode(rows, DefaultOptions())
	assert.Equal(t, ErrNoMelody, errors.Cause(err))
}

func TestEncodeNothingUsable(t *testing.T) {
	cases := map[string][]model.Row{
		"unmatched": {
			noteRow(2, 0, model.RowNoteOn, "60", "95"),
			noteRow(2, 480, model.RowNoteOn, "62", "95"),
			noteRow(2, 960, model.RowNoteOff, "64", "0"),
		},
		"unencodable": {
			noteRow(2, 0, model.RowNoteOn, "5", "95"),
			noteRow(2, 480, model.RowNoteOff, "5", "0"),
		},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			for _, pairing := range []Pairing{PairScan, PairStack} {
				_, err := Encode(rows, Options{Track: 2, Pairing: pairing})
				assert.Equal(t, ErrNoMelody, errors.Cause(err))
			}
		})
	}
}

func TestEncode(t *testing.T) {
	rows := []model.Row{
		noteRow(2, 0, model.RowNoteOn, "60", "95"),
		noteRow(2, 480, model.RowNoteOff, "60", "0"),
		noteRow(2, 480, model.RowNoteOn, "62", "95"),
		noteRow(2, 3840, model.RowNoteOff, "62", "0"),
	}
	text, err := Encode(rows, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "0!V!DC DC!X!2YO ", text)
}

func TestEncodeFile(t *testing.T) {
	preamble, err := midi.LoadPreamble("")
	require.NoError(t, err)
	rows := append(preamble,
		noteRow(2, 0, model.RowNoteOn, "60", "95"),
		noteRow(2, 480, model.RowNoteOff, "60", "0"),
		model.Row{Track: 2, Tick: 3840, Type: model.RowEndTrack},
	)
	path := filepath.Join(t.TempDir(), "in.mid")
	require.NoError(t, midi.WriteRowsAsMidi(path, rows))

	text, err := EncodeFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "0!V!DC ", text)
}

func TestParsePairing(t *testing.T) {
	p, err := ParsePairing("stack")
	assert.NoError(t, err)
	assert.Equal(t, PairStack, p)
	_, err = ParsePairing("heap")
	assert.Error(t, err)
}
