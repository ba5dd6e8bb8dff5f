package melody

import (
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
)

func FilterTrack(rows []model.Row, track int) []model.Row {
	var res []model.Row
	for _, r := range rows {
		if r.Track == track {
			res = append(res, r)
		}
	}
	return res
}

// FilterNoteEvents keeps note on/off rows in their original order, reduced
// to tick, pitch and kind. A note on with zero velocity counts as off. Rows
// without a readable pitch are dropped.
func FilterNoteEvents(rows []model.Row) []model.NoteEvent {
	var res []model.NoteEvent
	for _, r := range rows {
		if r.Type != model.RowNoteOn && r.Type != model.RowNoteOff {
			continue
		}
		pitch, err := midi.IntValue(r, 1)
		if err != nil || pitch < 0 || pitch > 127 {
			continue
		}
		isOff := r.Type == model.RowNoteOff
		if vel, err := midi.IntValue(r, 2); err == nil && vel == 0 {
			isOff = true
		}
		res = append(res, model.NoteEvent{
			Tick:  r.Tick,
			Pitch: uint8(pitch),
			IsOff: isOff,
		})
	}
	return res
}
