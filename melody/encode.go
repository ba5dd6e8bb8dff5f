package melody

import (
	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
	"github.com/kondzio13/alis/token"
	"github.com/pkg/errors"
)

var ErrNoMelody = errors.New("no melody found")

type Pairing int

const (
	// PairScan reproduces the pairing existing corpora were built with.
	PairScan Pairing = iota
	PairStack
)

func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "scan":
		return PairScan, nil
	case "stack":
		return PairStack, nil
	}
	return PairScan, errors.Errorf("unknown pairing %q", s)
}

type Options struct {
	Track   int
	Pairing Pairing
}

func DefaultOptions() Options {
	return Options{Track: constants.MelodyTrack, Pairing: PairScan}
}

// Notes extracts the melody notes of a row list.
func Notes(rows []model.Row, opts Options) ([]model.Note, error) {
	events := FilterNoteEvents(FilterTrack(rows, opts.Track))
	if len(events) == 0 {
		return nil, errors.Wrapf(ErrNoMelody, "track %d has no note events", opts.Track)
	}
	var notes []model.Note
	if opts.Pairing == PairStack {
		notes = PairNotesStacked(events)
	} else {
		notes = PairNotes(events)
	}
	if len(notes) == 0 {
		return nil, errors.Wrapf(ErrNoMelody, "no note on track %d could be paired", opts.Track)
	}
	return notes, nil
}

// Encode turns the rows of one performance into its solo text.
func Encode(rows []model.Row, opts Options) (string, error) {
	notes, err := Notes(rows, opts)
	if err != nil {
		return "", err
	}
	text := token.Serialize(notes)
	if text == "" {
		return "", errors.Wrap(ErrNoMelody, "no note has an encodable pitch")
	}
	return text, nil
}

func EncodeFile(path string, opts Options) (string, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return "", err
	}
	text, err := Encode(midi.ToRows(s), opts)
	return text, errors.Wrap(err, path)
}
