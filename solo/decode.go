package solo

import (
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
	"github.com/kondzio13/alis/token"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrEmptySolo = errors.New("sample contains no usable notes")

// Fitter moves note pitches onto a scale.
type Fitter interface {
	FitNotes(notes []model.Note) []model.Note
}

type Decoder struct {
	preamble  []model.Row
	fitter    Fitter
	tieBreak  TieBreak
	tickScale uint32
}

type Option func(*Decoder)

func WithPreamble(rows []model.Row) Option {
	return func(d *Decoder) {
		d.preamble = rows
	}
}

func WithFitter(f Fitter) Option {
	return func(d *Decoder) {
		d.fitter = f
	}
}

func WithTieBreak(tb TieBreak) Option {
	return func(d *Decoder) {
		d.tieBreak = tb
	}
}

// WithTickScale multiplies every decoded tick. Corpora written at a
// coarser resolution than the preamble need it; 0 is treated as 1.
func WithTickScale(scale uint32) Option {
	return func(d *Decoder) {
		d.tickScale = scale
	}
}

// NewDecoder builds a decoder. Without WithPreamble the built in preamble is
// used.
func NewDecoder(opts ...Option) (*Decoder, error) {
	d := &Decoder{tieBreak: TieReference, tickScale: 1}
	for _, opt := range opts {
		opt(d)
	}
	if d.tickScale == 0 {
		d.tickScale = 1
	}
	if d.preamble == nil {
		rows, err := midi.LoadPreamble("")
		if err != nil {
			return nil, errors.Wrap(err, "could not load preamble")
		}
		d.preamble = rows
	} else if err := midi.ValidateRows(d.preamble); err != nil {
		return nil, errors.Wrap(err, "bad preamble")
	}
	return d, nil
}

type Result struct {
	Notes []model.Note
	Rows  []model.Row
}

// scale applies the tick scale and drops notes whose track could not be
// closed on a bar line within 32 bit ticks.
func (d *Decoder) scale(notes []model.Note) []model.Note {
	res := notes[:0]
	for _, n := range notes {
		start := uint64(n.Start) * uint64(d.tickScale)
		end := uint64(n.End) * uint64(d.tickScale)
		if CloseBar(end) > MaxTick {
			logrus.WithFields(logrus.Fields{
				"start": start,
				"pitch": n.Pitch,
				"end":   end,
			}).WithError(token.ErrMalformedToken).Warn("Skipping token")
			continue
		}
		n.Start, n.End = uint32(start), uint32(end)
		res = append(res, n)
	}
	return res
}

// Decode rebuilds the rows of the first solo in a sample.
func (d *Decoder) Decode(sample string) (*Result, error) {
	notes := d.scale(token.Parse(token.StripTags(sample)))
	if len(notes) == 0 {
		return nil, ErrEmptySolo
	}
	if d.fitter != nil {
		notes = d.fitter.FitNotes(notes)
	}

	msgs := SortMessages(Expand(notes), d.tieBreak)
	var lastTick uint32
	if len(msgs) > 0 {
		lastTick = msgs[len(msgs)-1].Tick
	}

	logrus.WithFields(logrus.Fields{
		"notes":    len(notes),
		"messages": len(msgs),
		"tieBreak": d.tieBreak.String(),
	}).Debug("Decoded solo")

	return &Result{
		Notes: notes,
		Rows:  AssembleRows(d.preamble, msgs, lastTick),
	}, nil
}

func (d *Decoder) DecodeToFile(sample string, path string) (*Result, error) {
	res, err := d.Decode(sample)
	if err != nil {
		return nil, err
	}
	if err := midi.WriteRowsAsMidi(path, res.Rows); err != nil {
		return nil, err
	}
	return res, nil
}
