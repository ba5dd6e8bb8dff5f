package model

// Row is one line of the text row format: track, tick and event type,
// followed by the event specific values as written.
type Row struct {
	Track  int
	Tick   uint32
	Type   string
	Values []string
}

const (
	RowHeader        = "Header"
	RowStartTrack    = "Start_track"
	RowEndTrack      = "End_track"
	RowEndOfFile     = "End_of_file"
	RowNoteOn        = "Note_on_c"
	RowNoteOff       = "Note_off_c"
	RowProgram       = "Program_c"
	RowControl       = "Control_c"
	RowPitchBend     = "Pitch_bend_c"
	RowTempo         = "Tempo"
	RowTimeSignature = "Time_signature"
	RowTitle         = "Title_t"
	RowText          = "Text_t"

	RowCopyright      = "Copyright_t"
	RowInstrument     = "Instrument_name_t"
	RowLyric          = "Lyric_t"
	RowMarker         = "Marker_t"
	RowCuePoint       = "Cue_point_t"
	RowKeySignature   = "Key_signature"
	RowSMPTEOffset    = "SMPTE_offset"
	RowMIDIPort       = "MIDI_port"
	RowSequenceNumber = "Sequence_number"
	RowChannelPrefix  = "Channel_prefix"
	RowPolyAftertouch = "Poly_aftertouch_c"
	RowAftertouch     = "Channel_aftertouch_c"
)
