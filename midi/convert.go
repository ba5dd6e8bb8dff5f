package midi

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnorderedRows = errors.New("rows out of tick order")

var ErrNoHeader = errors.New("no header row")

var ErrUnsupportedRow = errors.New("unsupported row type")

const defaultResolution = 960

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

func itoa[A uint8 | uint16 | uint32 | int](v A) string {
	return strconv.Itoa(int(v))
}

func eventRow(track int, tick uint32, msg smf.Message) (model.Row, bool) {
	row := model.Row{Track: track, Tick: tick}
	var ch, key, vel, program, controller, value uint8
	var num, denom, clocks, demisemi uint8
	var bendRel int16
	var bendAbs uint16
	var bpm float64
	var text string

	channelMsg := gomidi.Message(msg)
	switch {
	case channelMsg.GetNoteOn(&ch, &key, &vel):
		row.Type = model.RowNoteOn
		row.Values = []string{itoa(ch), itoa(key), itoa(vel)}
	case channelMsg.GetNoteOff(&ch, &key, &vel):
		row.Type = model.RowNoteOff
		row.Values = []string{itoa(ch), itoa(key), itoa(vel)}
	case channelMsg.GetProgramChange(&ch, &program):
		row.Type = model.RowProgram
		row.Values = []string{itoa(ch), itoa(program)}
	case channelMsg.GetControlChange(&ch, &controller, &value):
		row.Type = model.RowControl
		row.Values = []string{itoa(ch), itoa(controller), itoa(value)}
	case channelMsg.GetPitchBend(&ch, &bendRel, &bendAbs):
		row.Type = model.RowPitchBend
		row.Values = []string{itoa(ch), itoa(bendAbs)}
	case msg.GetMetaTempo(&bpm):
		row.Type = model.RowTempo
		row.Values = []string{itoa(uint32(math.Round(60000000 / bpm)))}
	case msg.GetMetaTimeSig(&num, &denom, &clocks, &demisemi):
		row.Type = model.RowTimeSignature
		// the row format stores the denominator as a power of two
		row.Values = []string{itoa(num), itoa(bits.TrailingZeros8(denom)), itoa(clocks), itoa(demisemi)}
	case msg.GetMetaTrackName(&text):
		row.Type = model.RowTitle
		row.Values = []string{text}
	case msg.GetMetaText(&text):
		row.Type = model.RowText
		row.Values = []string{text}
	case len(msg) == 3 && msg[0]&0xF0 == 0xA0:
		row.Type = model.RowPolyAftertouch
		row.Values = []string{itoa(msg[0] & 0x0F), itoa(msg[1]), itoa(msg[2])}
	case len(msg) == 2 && msg[0]&0xF0 == 0xD0:
		row.Type = model.RowAftertouch
		row.Values = []string{itoa(msg[0] & 0x0F), itoa(msg[1])}
	default:
		return metaRow(row, msg)
	}
	return row, true
}

// ToRows translates a parsed file into rows. Tracks are numbered from 1,
// the header row belongs to track 0.
func ToRows(s *smf.SMF) []model.Row {
	var rows []model.Row

	resolution := defaultResolution
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		resolution = int(uint16(mt))
	}
	format := 0
	if len(s.Tracks) > 1 {
		format = 1
	}
	rows = append(rows, model.Row{
		Type:   model.RowHeader,
		Values: []string{itoa(format), itoa(len(s.Tracks)), itoa(resolution)},
	})

	for i, track := range s.Tracks {
		trackNum := i + 1
		rows = append(rows, model.Row{Track: trackNum, Type: model.RowStartTrack})
		var absTicks uint32
		closed := false
		for _, evt := range track {
			absTicks += evt.Delta
			if isEndOfTrack(evt.Message) {
				rows = append(rows, model.Row{Track: trackNum, Tick: absTicks, Type: model.RowEndTrack})
				closed = true
				break
			}
			if row, ok := eventRow(trackNum, absTicks, evt.Message); ok {
				rows = append(rows, row)
			}
		}
		if !closed {
			rows = append(rows, model.Row{Track: trackNum, Tick: absTicks, Type: model.RowEndTrack})
		}
	}

	rows = append(rows, model.Row{Type: model.RowEndOfFile})
	return rows
}

func textValue(r model.Row) string {
	if len(r.Values) == 0 {
		return ""
	}
	return r.Values[0]
}

// intValues reads the first n values of a numeric row.
func intValues(r model.Row, n int) ([]int, error) {
	if len(r.Values) < n {
		return nil, errors.Wrapf(ErrMalformedRow, "%v needs %d values, has %d", r.Type, n, len(r.Values))
	}
	vals := make([]int, n)
	for i := range vals {
		v, err := IntValue(r, i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func keySignature(r model.Row) ([]byte, error) {
	vals, err := intValues(r, 1)
	if err != nil {
		return nil, err
	}
	if vals[0] < -7 || vals[0] > 7 || len(r.Values) < 2 {
		return nil, errors.Wrapf(ErrMalformedRow, "key signature %v", r.Values)
	}
	var minor byte
	switch strings.ToLower(r.Values[1]) {
	case "major":
	case "minor":
		minor = 1
	default:
		return nil, errors.Wrapf(ErrMalformedRow, "key signature mode %q", r.Values[1])
	}
	return metaMessage(metaKeySignature, []byte{byte(int8(vals[0])), minor}), nil
}

func toBytes(vals []int) []byte {
	res := make([]byte, len(vals))
	for i, v := range vals {
		res[i] = byte(v)
	}
	return res
}

func rowMessage(r model.Row) ([]byte, error) {
	switch r.Type {
	case model.RowTitle:
		return smf.MetaTrackSequenceName(textValue(r)), nil
	case model.RowText:
		return smf.MetaText(textValue(r)), nil
	case model.RowKeySignature:
		return keySignature(r)
	}
	if typ, ok := textMetaTypes[r.Type]; ok {
		return metaMessage(typ, []byte(textValue(r))), nil
	}

	n, ok := valueCounts[r.Type]
	if !ok {
		return nil, nil
	}
	vals, err := intValues(r, n)
	if err != nil {
		return nil, err
	}

	switch r.Type {
	case model.RowNoteOn:
		return gomidi.NoteOn(uint8(vals[0]), uint8(vals[1]), uint8(vals[2])), nil
	case model.RowNoteOff:
		return gomidi.NoteOff(uint8(vals[0]), uint8(vals[1])), nil
	case model.RowProgram:
		return gomidi.ProgramChange(uint8(vals[0]), uint8(vals[1])), nil
	case model.RowControl:
		return gomidi.ControlChange(uint8(vals[0]), uint8(vals[1]), uint8(vals[2])), nil
	case model.RowPitchBend:
		// rows hold the absolute 14 bit value, centred on 8192
		return gomidi.Pitchbend(uint8(vals[0]), int16(vals[1]-8192)), nil
	case model.RowPolyAftertouch:
		return []byte{0xA0 | byte(vals[0]&0x0F), byte(vals[1]), byte(vals[2])}, nil
	case model.RowAftertouch:
		return []byte{0xD0 | byte(vals[0]&0x0F), byte(vals[1])}, nil
	case model.RowTempo:
		if vals[0] <= 0 {
			return nil, errors.Wrapf(ErrMalformedRow, "tempo %d", vals[0])
		}
		return smf.MetaTempo(60000000 / float64(vals[0])), nil
	case model.RowTimeSignature:
		return smf.MetaTimeSig(uint8(vals[0]), uint8(1)<<uint(vals[1]), uint8(vals[2]), uint8(vals[3])), nil
	case model.RowSMPTEOffset:
		return metaMessage(metaSMPTEOffset, toBytes(vals)), nil
	case model.RowMIDIPort:
		return metaMessage(metaPort, toBytes(vals)), nil
	case model.RowChannelPrefix:
		return metaMessage(metaChannelPrefix, toBytes(vals)), nil
	case model.RowSequenceNumber:
		return metaMessage(metaSequenceNumber, []byte{byte(vals[0] >> 8), byte(vals[0])}), nil
	}
	return nil, nil
}

func isStructuralRow(rowType string) bool {
	switch rowType {
	case model.RowHeader, model.RowStartTrack, model.RowEndTrack, model.RowEndOfFile:
		return true
	}
	return false
}

// ValidateRows checks that every event row can be written to a midi file,
// so a bad preamble fails once at load time.
func ValidateRows(rows []model.Row) error {
	for i, r := range rows {
		if isStructuralRow(r.Type) {
			continue
		}
		msg, err := rowMessage(r)
		if err != nil {
			return errors.Wrapf(err, "row %d", i+1)
		}
		if msg == nil {
			return errors.Wrapf(ErrUnsupportedRow, "row %d: %v", i+1, r.Type)
		}
	}
	return nil
}

// FromRows builds a file out of rows. Ticks are absolute per track and must
// not decrease within a track.
func FromRows(rows []model.Row) (*smf.SMF, error) {
	resolution := -1
	var order []int
	byTrack := make(map[int][]model.Row)
	for _, r := range rows {
		switch r.Type {
		case model.RowHeader:
			div, err := IntValue(r, 2)
			if err != nil {
				return nil, err
			}
			resolution = div
		case model.RowEndOfFile:
		default:
			if _, ok := byTrack[r.Track]; !ok {
				order = append(order, r.Track)
			}
			byTrack[r.Track] = append(byTrack[r.Track], r)
		}
	}
	if resolution < 0 {
		return nil, ErrNoHeader
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(uint16(resolution))

	for _, trackNum := range order {
		var tr smf.Track
		var last uint32
		closed := false
		for _, r := range byTrack[trackNum] {
			if r.Tick < last {
				return nil, errors.Wrapf(ErrUnorderedRows, "track %d: %v at %d after %d", trackNum, r.Type, r.Tick, last)
			}
			delta := r.Tick - last
			switch r.Type {
			case model.RowStartTrack:
				continue
			case model.RowEndTrack:
				tr.Close(delta)
				closed = true
			default:
				msg, err := rowMessage(r)
				if err != nil {
					return nil, errors.Wrapf(err, "track %d", trackNum)
				}
				if msg == nil {
					logrus.WithFields(logrus.Fields{"track": trackNum, "type": r.Type}).Warn("Skipping unsupported row")
					continue
				}
				tr.Add(delta, msg)
			}
			last = r.Tick
			if closed {
				break
			}
		}
		if !closed {
			tr.Close(0)
		}
		s.Add(tr)
	}

	return s, nil
}

func WriteRowsAsMidi(path string, rows []model.Row) error {
	s, err := FromRows(rows)
	if err != nil {
		return err
	}
	return WriteMidiFile(path, s)
}
