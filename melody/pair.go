package melody

import (
	"github.com/kondzio13/alis/model"
	"github.com/sirupsen/logrus"
)

// PairNotes turns events into notes the way the corpus was built: the head
// event starts a note and the first later event with the same pitch ends
// it, whatever its kind. Both are removed and the scan restarts at the new
// head.
//
// NOTE: this assumes a pitch is never struck again while it is still
// sounding. Overlapping same-pitch notes pair with the wrong end event.
// PairNotesStacked handles that case but does not reproduce old corpora.
func PairNotes(events []model.NoteEvent) []model.Note {
	work := make([]model.NoteEvent, len(events))
	copy(work, events)

	var notes []model.Note
	for len(work) > 0 {
		head := work[0]
		match := -1
		for i := 1; i < len(work); i++ {
			if work[i].Pitch == head.Pitch {
				match = i
				break
			}
		}
		if match < 0 {
			logrus.WithFields(logrus.Fields{"tick": head.Tick, "pitch": head.Pitch}).Warn("Dropping note without a matching end")
			work = work[1:]
			continue
		}
		notes = append(notes, model.Note{Start: head.Tick, Pitch: head.Pitch, End: work[match].Tick})
		work = append(work[1:match], work[match+1:]...)
	}
	return notes
}

// PairNotesStacked pairs each end event with the most recent unmatched
// start of the same pitch. Notes come out in start order.
func PairNotesStacked(events []model.NoteEvent) []model.Note {
	open := make(map[uint8][]int)
	var notes []model.Note
	for _, evt := range events {
		if !evt.IsOff {
			open[evt.Pitch] = append(open[evt.Pitch], len(notes))
			notes = append(notes, model.Note{Start: evt.Tick, Pitch: evt.Pitch, End: evt.Tick})
			continue
		}
		stack := open[evt.Pitch]
		if len(stack) == 0 {
			logrus.WithFields(logrus.Fields{"tick": evt.Tick, "pitch": evt.Pitch}).Warn("Ignoring end without a sounding note")
			continue
		}
		idx := stack[len(stack)-1]
		open[evt.Pitch] = stack[:len(stack)-1]
		notes[idx].End = evt.Tick
	}

	var res []model.Note
	for i, n := range notes {
		if isOpen(open[n.Pitch], i) {
			logrus.WithFields(logrus.Fields{"tick": n.Start, "pitch": n.Pitch}).Warn("Dropping note without a matching end")
			continue
		}
		res = append(res, n)
	}
	return res
}

func isOpen(stack []int, idx int) bool {
	for _, v := range stack {
		if v == idx {
			return true
		}
	}
	return false
}
