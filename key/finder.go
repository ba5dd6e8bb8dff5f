package key

import (
	"strings"
	"unicode"

	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyProgression = errors.New("empty chord progression")
	ErrNoCandidates     = errors.New("no pentatonic key fits the progression")
	ErrNotCandidate     = errors.New("key is not a candidate")
	ErrNotFiltered      = errors.New("no progression has been filtered yet")
)

type State int

const (
	AwaitingProgression State = iota
	CandidatesComputed
	NeedsDisambiguation
	Resolved
)

func (s State) String() string {
	switch s {
	case AwaitingProgression:
		return "awaiting progression"
	case CandidatesComputed:
		return "candidates computed"
	case NeedsDisambiguation:
		return "needs disambiguation"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Rand is the random source behind every arbitrary choice. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// Finder narrows the 12 roots down to the key of a song. One Finder serves
// one song and is not safe for concurrent use.
type Finder struct {
	chart      chord.Chart
	candidates []int
	state      State
	key        model.Key
}

func NewFinder(chart chord.Chart) *Finder {
	return &Finder{chart: chart}
}

func (f *Finder) State() State {
	return f.state
}

func (f *Finder) Candidates() []string {
	res := make([]string, 0, len(f.candidates))
	for _, c := range f.candidates {
		res = append(res, f.chart[c].Root)
	}
	return res
}

func (f *Finder) Key() (model.Key, bool) {
	return f.key, f.state == Resolved
}

func (f *Finder) resolve(root int, name string) {
	f.key = model.Key{Root: root, Name: name, Minor: isMinorName(name)}
	f.state = Resolved
}

// Settle moves a finder out of CandidatesComputed: a single candidate
// resolves the key, several need disambiguation. Other states are left
// alone.
func (f *Finder) Settle() State {
	if f.state != CandidatesComputed {
		return f.state
	}
	if len(f.candidates) == 1 {
		f.resolve(f.candidates[0], f.chart[f.candidates[0]].Root)
	} else {
		f.state = NeedsDisambiguation
	}
	return f.state
}

func (f *Finder) keep(roots []int, symbols []model.ChordSymbol) []int {
	var res []int
	for _, root := range roots {
		if f.chart[root].HasAll(symbols) {
			res = append(res, root)
		}
	}
	return res
}

// Compute keeps every root whose chords cover the progression and leaves
// the finder in CandidatesComputed. It starts from all 12 roots, so it can
// be called again for a new song.
func (f *Finder) Compute(progression model.Progression) ([]string, error) {
	if len(progression) == 0 {
		return nil, ErrEmptyProgression
	}
	all := make([]int, len(f.chart))
	for i := range all {
		all[i] = i
	}
	f.state = AwaitingProgression
	f.key = model.Key{}
	f.candidates = f.keep(all, chord.Symbols(progression))
	if len(f.candidates) == 0 {
		return nil, errors.Wrapf(ErrNoCandidates, "%v", chord.FormatProgression(progression))
	}
	f.state = CandidatesComputed

	logrus.WithFields(logrus.Fields{
		"candidates": f.Candidates(),
	}).Debug("Computed candidate keys")
	return f.Candidates(), nil
}

// Filter computes the candidates and settles them in one step.
func (f *Finder) Filter(progression model.Progression) ([]string, error) {
	res, err := f.Compute(progression)
	if err != nil {
		return nil, err
	}
	logrus.WithField("state", f.Settle().String()).Debug("Filtered keys")
	return res, nil
}

// Refine filters the current candidates against more chords of the song.
// The set only shrinks; chords that would rule out every candidate are
// rejected and the set is left as it was.
func (f *Finder) Refine(extra []model.ChordSymbol) ([]string, error) {
	if f.state == AwaitingProgression {
		return nil, ErrNotFiltered
	}
	if f.state == Resolved || len(extra) == 0 {
		return f.Candidates(), nil
	}
	kept := f.keep(f.candidates, extra)
	if len(kept) == 0 {
		return f.Candidates(), errors.Wrapf(ErrNoCandidates, "with %v", extra)
	}
	f.candidates = kept
	f.state = CandidatesComputed
	f.Settle()
	return f.Candidates(), nil
}

// Choose settles on one of the candidates. A lowercase name picks the minor
// flavoured scale on that root.
func (f *Finder) Choose(name string) (model.Key, error) {
	if f.state == AwaitingProgression {
		return model.Key{}, ErrNotFiltered
	}
	root, ok := chord.RootIndex(name)
	if !ok {
		return model.Key{}, errors.Wrapf(ErrNotCandidate, "%q", name)
	}
	for _, c := range f.candidates {
		if c == root {
			f.resolve(root, name)
			return f.key, nil
		}
	}
	return model.Key{}, errors.Wrapf(ErrNotCandidate, "%q not in %v", name, f.Candidates())
}

// Resolve returns the key, drawing one of the remaining candidates at
// random when more than one is left.
func (f *Finder) Resolve(rng Rand) (model.Key, error) {
	switch f.state {
	case AwaitingProgression:
		return model.Key{}, ErrNotFiltered
	case CandidatesComputed:
		if f.Settle() == Resolved {
			return f.key, nil
		}
	case Resolved:
		return f.key, nil
	}
	pick := f.candidates[rng.Intn(len(f.candidates))]
	logrus.WithFields(logrus.Fields{
		"candidates": f.Candidates(),
		"key":        f.chart[pick].Root,
	}).Info("Picked a key at random")
	f.resolve(pick, f.chart[pick].Root)
	return f.key, nil
}

func isMinorName(name string) bool {
	return name != "" && unicode.IsLower(rune(name[0]))
}

// KeyFromName builds a key without a progression, for a key the caller
// already knows.
func KeyFromName(name string) (model.Key, error) {
	root, ok := chord.RootIndex(strings.TrimSpace(name))
	if !ok {
		return model.Key{}, errors.Wrapf(ErrNotCandidate, "unknown key %q", name)
	}
	name = strings.TrimSpace(name)
	return model.Key{Root: root, Name: name, Minor: isMinorName(name)}, nil
}
