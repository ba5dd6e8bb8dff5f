package solo

import (
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
)

// Expand splits every note into an on and an off message. Zero length
// notes produce nothing.
func Expand(notes []model.Note) []model.Message {
	msgs := make([]model.Message, 0, 2*len(notes))
	for _, n := range notes {
		if n.Start == n.End {
			continue
		}
		msgs = append(msgs,
			model.Message{Tick: n.Start, Pitch: n.Pitch},
			model.Message{Tick: n.End, Pitch: n.Pitch, IsOff: true},
		)
	}
	return msgs
}

type TieBreak int

const (
	// TieReference takes the right half first when merging equal ticks,
	// which is what solos generated so far were written with.
	TieReference TieBreak = iota
	// TieOnBeforeOff keeps stream order for equal ticks, except that note
	// ons go ahead of note offs.
	TieOnBeforeOff
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "reference":
		return TieReference, nil
	case "on-before-off":
		return TieOnBeforeOff, nil
	}
	return TieReference, errors.Errorf("unknown tie-break %q", s)
}

func (tb TieBreak) String() string {
	if tb == TieOnBeforeOff {
		return "on-before-off"
	}
	return "reference"
}

func (tb TieBreak) takeLeft(l, r model.Message) bool {
	if l.Tick != r.Tick {
		return l.Tick < r.Tick
	}
	if tb == TieOnBeforeOff {
		return !l.IsOff || r.IsOff
	}
	return false
}

// SortMessages orders messages by tick with a top-down merge sort; the
// tie-break decides which half wins on equal ticks. The input is not
// modified.
func SortMessages(msgs []model.Message, tb TieBreak) []model.Message {
	res := make([]model.Message, len(msgs))
	copy(res, msgs)
	mergeSort(res, make([]model.Message, len(msgs)), tb)
	return res
}

func mergeSort(msgs []model.Message, buf []model.Message, tb TieBreak) {
	if len(msgs) < 2 {
		return
	}
	middle := len(msgs) / 2
	mergeSort(msgs[:middle], buf[:middle], tb)
	mergeSort(msgs[middle:], buf[middle:], tb)

	copy(buf, msgs)
	left, right := buf[:middle], buf[middle:]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if tb.takeLeft(left[i], right[j]) {
			msgs[k] = left[i]
			i++
		} else {
			msgs[k] = right[j]
			j++
		}
		k++
	}
	k += copy(msgs[k:], left[i:])
	copy(msgs[k:], right[j:])
}
