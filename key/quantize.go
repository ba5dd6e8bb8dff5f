package key

import (
	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/model"
)

var (
	majorDegrees = [12]bool{0: true, 2: true, 4: true, 7: true, 9: true}
	minorDegrees = [12]bool{0: true, 3: true, 5: true, 7: true, 10: true}
)

// Quantizer snaps pitches onto the pentatonic scale of a key.
type Quantizer struct {
	key     model.Key
	degrees [12]bool
	rng     Rand
}

func NewQuantizer(k model.Key, rng Rand) *Quantizer {
	degrees := majorDegrees
	if k.Minor {
		degrees = minorDegrees
	}
	return &Quantizer{key: k, degrees: degrees, rng: rng}
}

func (q *Quantizer) Key() model.Key {
	return q.key
}

func (q *Quantizer) InScale(pitch int) bool {
	return q.degrees[((pitch-q.key.Root)%12+12)%12]
}

func (q *Quantizer) walk(pitch int, dir int) (int, bool) {
	for p := pitch + dir; p >= 0 && p <= constants.MaxPitch; p += dir {
		if q.InScale(p) {
			return p, true
		}
	}
	return pitch, false
}

// Quantize leaves scale tones alone and raises the seventh degree to the
// root. Anything else moves to the nearest scale tone in a direction drawn
// at random.
func (q *Quantizer) Quantize(pitch uint8) uint8 {
	p := int(pitch)
	if q.InScale(p) {
		return pitch
	}
	if ((p-q.key.Root)%12+12)%12 == 11 && p < constants.MaxPitch {
		return pitch + 1
	}

	dir := 1
	if q.rng.Intn(2) == 0 {
		dir = -1
	}
	if res, ok := q.walk(p, dir); ok {
		return uint8(res)
	}
	// ran off the end of the pitch range
	res, _ := q.walk(p, -dir)
	return uint8(res)
}

func (q *Quantizer) FitNotes(notes []model.Note) []model.Note {
	res := make([]model.Note, len(notes))
	for i, n := range notes {
		n.Pitch = q.Quantize(n.Pitch)
		res[i] = n
	}
	return res
}
