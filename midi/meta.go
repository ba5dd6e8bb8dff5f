package midi

import (
	"strconv"

	"github.com/kondzio13/alis/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// meta event types written from raw bytes
const (
	metaSequenceNumber = 0x00
	metaChannelPrefix  = 0x20
	metaPort           = 0x21
	metaSMPTEOffset    = 0x54
	metaKeySignature   = 0x59
)

var textMetaTypes = map[string]byte{
	model.RowCopyright:  0x02,
	model.RowInstrument: 0x04,
	model.RowLyric:      0x05,
	model.RowMarker:     0x06,
	model.RowCuePoint:   0x07,
}

var textMetaRows = map[byte]string{
	0x02: model.RowCopyright,
	0x04: model.RowInstrument,
	0x05: model.RowLyric,
	0x06: model.RowMarker,
	0x07: model.RowCuePoint,
}

// number of leading integer values each numeric row carries
var valueCounts = map[string]int{
	model.RowNoteOn:         3,
	model.RowNoteOff:        2,
	model.RowProgram:        2,
	model.RowControl:        3,
	model.RowPitchBend:      2,
	model.RowPolyAftertouch: 3,
	model.RowAftertouch:     2,
	model.RowTempo:          1,
	model.RowTimeSignature:  4,
	model.RowSMPTEOffset:    5,
	model.RowMIDIPort:       1,
	model.RowChannelPrefix:  1,
	model.RowSequenceNumber: 1,
}

func varLength(n int) []byte {
	res := []byte{byte(n & 0x7F)}
	for n >>= 7; n > 0; n >>= 7 {
		res = append([]byte{byte(n&0x7F) | 0x80}, res...)
	}
	return res
}

// metaMessage lays out a meta event as FF, type, length, data.
func metaMessage(typ byte, data []byte) smf.Message {
	msg := []byte{0xFF, typ}
	msg = append(msg, varLength(len(data))...)
	return append(msg, data...)
}

// metaPayload is the inverse of metaMessage.
func metaPayload(msg smf.Message) (byte, []byte, bool) {
	if len(msg) < 3 || msg[0] != 0xFF {
		return 0, nil, false
	}
	length, i := 0, 2
	for {
		if i >= len(msg) || i >= 6 {
			return 0, nil, false
		}
		b := msg[i]
		i++
		length = length<<7 | int(b&0x7F)
		if b&0x80 == 0 {
			break
		}
	}
	if i+length > len(msg) {
		return 0, nil, false
	}
	return msg[1], msg[i : i+length], true
}

func byteValues(data []byte) []string {
	res := make([]string, len(data))
	for i, b := range data {
		res[i] = itoa(b)
	}
	return res
}

// metaRow fills in a row for the meta events gomidi has no getter for.
func metaRow(row model.Row, msg smf.Message) (model.Row, bool) {
	typ, data, ok := metaPayload(msg)
	if !ok {
		return row, false
	}
	if rowType, ok := textMetaRows[typ]; ok {
		row.Type = rowType
		row.Values = []string{string(data)}
		return row, true
	}

	switch {
	case typ == metaKeySignature && len(data) == 2:
		mode := "major"
		if data[1] == 1 {
			mode = "minor"
		}
		row.Type = model.RowKeySignature
		row.Values = []string{strconv.Itoa(int(int8(data[0]))), mode}
	case typ == metaSMPTEOffset && len(data) == 5:
		row.Type = model.RowSMPTEOffset
		row.Values = byteValues(data)
	case typ == metaPort && len(data) == 1:
		row.Type = model.RowMIDIPort
		row.Values = byteValues(data)
	case typ == metaChannelPrefix && len(data) == 1:
		row.Type = model.RowChannelPrefix
		row.Values = byteValues(data)
	case typ == metaSequenceNumber && len(data) == 2:
		row.Type = model.RowSequenceNumber
		row.Values = []string{itoa(int(data[0])<<8 | int(data[1]))}
	default:
		return row, false
	}
	return row, true
}
