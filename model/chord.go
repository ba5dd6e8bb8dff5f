package model

// ChordSymbol is a chart symbol: uppercase root for major, lowercase for
// minor, optional trailing "b" for a flatted root.
type ChordSymbol = string

type ProgressionEntry struct {
	Chord ChordSymbol
	Bars  int
}

type Progression = []ProgressionEntry

// Key is a resolved pentatonic key. Root is a pitch class 0..11, C = 0.
type Key struct {
	Root  int
	Name  string
	Minor bool
}
