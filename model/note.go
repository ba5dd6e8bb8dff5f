package model

// NoteEvent is a melody-track row reduced to what the pairer needs.
type NoteEvent struct {
	Tick  uint32
	Pitch uint8
	IsOff bool
}

// Note is a pitch sounding from Start to End (ticks). End >= Start.
type Note struct {
	Start uint32
	Pitch uint8
	End   uint32
}

// Token is the textual form of one Note: numeral digits and a shifted
// pitch character.
type Token struct {
	Start string
	Pitch rune
	End   string
}

type Message struct {
	Tick  uint32
	Pitch uint8
	IsOff bool
}
