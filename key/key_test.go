package key

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (r fixedRand) Intn(n int) int {
	return int(r) % n
}

func progression(t *testing.T, text string) model.Progression {
	p, err := chord.ParseProgression(text)
	require.NoError(t, err)
	return p
}

func TestFilterResolvesUniqueKey(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	candidates, err := f.Filter(progression(t, "C:2,am:2,F:1,G:1"))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"C"}, candidates)
	assert.Equal(Resolved, f.State())
	k, ok := f.Key()
	assert.True(ok)
	assert.Equal(model.Key{Root: 0, Name: "C", Minor: false}, k)
}

func TestFilterAmbiguous(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	candidates, err := f.Filter(progression(t, "C:4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "Db", "F", "G", "A"}, candidates)
	assert.Equal(t, NeedsDisambiguation, f.State())
	_, ok := f.Key()
	assert.False(t, ok)
}

func TestComputeStopsAtCandidates(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	candidates, err := f.Compute(progression(t, "C:2,am:2,F:1,G:1"))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"C"}, candidates)
	assert.Equal(CandidatesComputed, f.State())
	_, ok := f.Key()
	assert.False(ok)

	assert.Equal(Resolved, f.Settle())
	k, ok := f.Key()
	assert.True(ok)
	assert.Equal("C", k.Name)
	assert.Equal(Resolved, f.Settle())
}

func TestSettleAmbiguous(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	assert.Equal(t, AwaitingProgression, f.Settle())

	_, err := f.Compute(progression(t, "C:4"))
	require.NoError(t, err)
	assert.Equal(t, CandidatesComputed, f.State())
	assert.Equal(t, NeedsDisambiguation, f.Settle())
}

func TestResolveFromComputedCandidates(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Compute(progression(t, "C:2,am:2,F:1,G:1"))
	require.NoError(t, err)
	k, err := f.Resolve(fixedRand(3))
	require.NoError(t, err)
	assert.Equal(t, "C", k.Name)

	_, err = f.Compute(progression(t, "C"))
	require.NoError(t, err)
	k, err = f.Resolve(fixedRand(2))
	require.NoError(t, err)
	assert.Equal(t, "F", k.Name)
	assert.Equal(t, Resolved, f.State())
}

func TestFilterErrors(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Filter(nil)
	assert.Equal(t, ErrEmptyProgression, err)

	_, err = f.Filter(progression(t, "C ab"))
	assert.Equal(t, ErrNoCandidates, errors.Cause(err))
	assert.Equal(t, AwaitingProgression, f.State())
}

func TestRefineNarrows(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Filter(progression(t, "C"))
	require.NoError(t, err)

	candidates, err := f.Refine([]model.ChordSymbol{"d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "F"}, candidates)
	assert.Equal(t, NeedsDisambiguation, f.State())

	candidates, err = f.Refine([]model.ChordSymbol{"e"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, candidates)
	assert.Equal(t, Resolved, f.State())
}

func TestRefineNeverEmpties(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Filter(progression(t, "C"))
	require.NoError(t, err)

	candidates, err := f.Refine([]model.ChordSymbol{"ab"})
	assert.Equal(t, ErrNoCandidates, errors.Cause(err))
	assert.Equal(t, []string{"C", "Db", "F", "G", "A"}, candidates)
}

func TestChoose(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Choose("C")
	assert.Equal(t, ErrNotFiltered, err)

	_, err = f.Filter(progression(t, "C"))
	require.NoError(t, err)

	_, err = f.Choose("E")
	assert.Equal(t, ErrNotCandidate, errors.Cause(err))

	k, err := f.Choose("a")
	require.NoError(t, err)
	assert.Equal(t, model.Key{Root: 9, Name: "a", Minor: true}, k)
	assert.Equal(t, Resolved, f.State())
}

func TestResolveRandomFallback(t *testing.T) {
	f := NewFinder(chord.BuildChart())
	_, err := f.Resolve(fixedRand(0))
	assert.Equal(t, ErrNotFiltered, err)

	_, err = f.Filter(progression(t, "C"))
	require.NoError(t, err)
	k, err := f.Resolve(fixedRand(2))
	require.NoError(t, err)
	assert.Equal(t, "F", k.Name)
	assert.Equal(t, 5, k.Root)
}

func TestResolveWithFixedDecision(t *testing.T) {
	chart := chord.BuildChart()

	k, err := Resolve(NewFinder(chart), progression(t, "C"), Fixed{Key: "G"}, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, "G", k.Name)

	k, err = Resolve(NewFinder(chart), progression(t, "C"), Fixed{Extra: []model.ChordSymbol{"d", "e"}}, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, "C", k.Name)

	k, err = Resolve(NewFinder(chart), progression(t, "C"), Fixed{Extra: []model.ChordSymbol{"d"}}, fixedRand(1))
	require.NoError(t, err)
	assert.Equal(t, "F", k.Name)

	_, err = Resolve(NewFinder(chart), progression(t, "C"), Fixed{Key: "E"}, fixedRand(0))
	assert.Equal(t, ErrNotCandidate, errors.Cause(err))
}

func TestResolveWithoutDisambiguator(t *testing.T) {
	k, err := Resolve(NewFinder(chord.BuildChart()), progression(t, "C"), nil, fixedRand(4))
	require.NoError(t, err)
	assert.Equal(t, "A", k.Name)
}

func TestPromptPicksKey(t *testing.T) {
	var out bytes.Buffer
	p := Prompt{In: strings.NewReader("Q\nG\n"), Out: &out}
	d, err := p.Disambiguate([]string{"C", "G"})
	require.NoError(t, err)
	assert.Equal(t, Decision{Key: "G"}, d)
	assert.Contains(t, out.String(), "Invalid key...")
}

func TestPromptAsksForMoreChords(t *testing.T) {
	var out bytes.Buffer
	p := Prompt{In: strings.NewReader("x\ny\nH\nd, e\n"), Out: &out}
	d, err := p.Disambiguate([]string{"C", "F"})
	require.NoError(t, err)
	assert.Equal(t, Decision{Extra: []model.ChordSymbol{"d", "e"}}, d)
	assert.Contains(t, out.String(), "Invalid chord entered")
}

func TestPromptGivesUp(t *testing.T) {
	p := Prompt{In: strings.NewReader("x\nn\n"), Out: &bytes.Buffer{}}
	d, err := p.Disambiguate([]string{"C", "F"})
	require.NoError(t, err)
	assert.Equal(t, Decision{}, d)
}

func TestKeyFromName(t *testing.T) {
	k, err := KeyFromName("Eb")
	require.NoError(t, err)
	assert.Equal(t, model.Key{Root: 3, Name: "Eb"}, k)
	_, err = KeyFromName("H")
	assert.Error(t, err)
}

func TestQuantizeKnownValues(t *testing.T) {
	cMajor := model.Key{Root: 0, Name: "C"}

	assert := assert.New(t)
	assert.Equal(uint8(60), NewQuantizer(cMajor, fixedRand(0)).Quantize(60))
	assert.Equal(uint8(72), NewQuantizer(cMajor, fixedRand(0)).Quantize(71))
	// F: down lands on E, up walks past F# to G
	assert.Equal(uint8(64), NewQuantizer(cMajor, fixedRand(0)).Quantize(65))
	assert.Equal(uint8(67), NewQuantizer(cMajor, fixedRand(1)).Quantize(65))

	aMinor := model.Key{Root: 9, Name: "a", Minor: true}
	assert.Equal(uint8(69), NewQuantizer(aMinor, fixedRand(0)).Quantize(70))
	assert.Equal(uint8(72), NewQuantizer(aMinor, fixedRand(1)).Quantize(70))
}

func TestQuantizeTopOfRange(t *testing.T) {
	abMajor := model.Key{Root: 8, Name: "Ab"}
	assert.Equal(t, uint8(125), NewQuantizer(abMajor, fixedRand(1)).Quantize(127))
}

func TestQuantizeLandsOnNearestScaleTone(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for root := 0; root < 12; root++ {
		for _, minor := range []bool{false, true} {
			k := model.Key{Root: root, Minor: minor}
			q := NewQuantizer(k, r)
			name := fmt.Sprintf("root %d minor %v", root, minor)
			t.Run(name, func(t *testing.T) {
				for p := 0; p <= 127; p++ {
					got := int(q.Quantize(uint8(p)))
					require.True(t, q.InScale(got), "pitch %d -> %d", p, got)
					dist := got - p
					if dist < 0 {
						dist = -dist
					}
					require.LessOrEqual(t, dist, 2, "pitch %d -> %d", p, got)

					lo, hi := p, got
					if lo > hi {
						lo, hi = hi, lo
					}
					for between := lo + 1; between < hi; between++ {
						require.False(t, q.InScale(between), "pitch %d skipped %d on the way to %d", p, between, got)
					}
				}
			})
		}
	}
}

func TestFitNotesLeavesInputAlone(t *testing.T) {
	notes := []model.Note{{Start: 0, Pitch: 61, End: 10}}
	fitted := NewQuantizer(model.Key{Root: 0}, fixedRand(0)).FitNotes(notes)
	assert.Equal(t, uint8(60), fitted[0].Pitch)
	assert.Equal(t, uint8(61), notes[0].Pitch)
}
