package solo

import (
	"math"
	"strconv"

	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/model"
)

// MaxTick is the last bar line that fits in a 32 bit tick.
const MaxTick = math.MaxUint32 / constants.BarLength * constants.BarLength

// CloseBar returns the first bar line at or after tick.
func CloseBar(tick uint64) uint64 {
	if rem := tick % constants.BarLength; rem != 0 {
		return tick + constants.BarLength - rem
	}
	return tick
}

func messageRow(m model.Message) model.Row {
	row := model.Row{Track: constants.MelodyTrack, Tick: m.Tick, Type: model.RowNoteOn}
	vel := constants.VelocityOn
	if m.IsOff {
		row.Type = model.RowNoteOff
		vel = constants.VelocityOff
	}
	row.Values = []string{
		strconv.Itoa(constants.MelodyChannel),
		strconv.Itoa(int(m.Pitch)),
		strconv.Itoa(vel),
	}
	return row
}

// AssembleRows lays out a full file: the preamble verbatim, one row per
// sorted message, the melody track end on the bar line after lastTick and
// the end of file. lastTick must not be past MaxTick.
func AssembleRows(preamble []model.Row, msgs []model.Message, lastTick uint32) []model.Row {
	rows := make([]model.Row, 0, len(preamble)+len(msgs)+2)
	rows = append(rows, preamble...)
	for _, m := range msgs {
		rows = append(rows, messageRow(m))
	}
	rows = append(rows,
		model.Row{Track: constants.MelodyTrack, Tick: uint32(CloseBar(uint64(lastTick))), Type: model.RowEndTrack},
		model.Row{Type: model.RowEndOfFile},
	)
	return rows
}
