package key

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Decision is the outside help for an ambiguous progression: either a key
// picked from the candidates or more chords of the song. Both may be empty.
type Decision struct {
	Key   string
	Extra []model.ChordSymbol
}

type Disambiguator interface {
	Disambiguate(candidates []string) (Decision, error)
}

// Fixed answers with a decision made up front, from flags or a request.
type Fixed Decision

func (d Fixed) Disambiguate(candidates []string) (Decision, error) {
	return Decision(d), nil
}

// Prompt asks on a line based terminal.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Disambiguate(candidates []string) (Decision, error) {
	var d Decision
	scanner := bufio.NewScanner(p.In)
	ask := func(format string, args ...any) (string, bool) {
		fmt.Fprintf(p.Out, format, args...)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		answer, ok := ask("Known key? One of %v, or 'x' if unsure: ", strings.Join(candidates, " "))
		if !ok {
			return d, scanner.Err()
		}
		if answer == "x" {
			break
		}
		if isCandidate(answer, candidates) {
			d.Key = answer
			return d, nil
		}
		fmt.Fprintln(p.Out, "Invalid key...")
	}

	answer, ok := ask("Any more chords used in the song? (y/n): ")
	if !ok || answer != "y" {
		return d, scanner.Err()
	}
	for {
		answer, ok := ask("Extra chords: ")
		if !ok {
			return d, scanner.Err()
		}
		extra, err := chord.ParseAll(strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }))
		if err == nil && len(extra) > 0 {
			d.Extra = extra
			return d, nil
		}
		fmt.Fprintln(p.Out, "Invalid chord entered. Try again...")
	}
}

func isCandidate(name string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Resolve runs a progression through the finder, asks d for help when more
// than one key fits, and falls back to a random candidate.
func Resolve(f *Finder, progression model.Progression, d Disambiguator, rng Rand) (model.Key, error) {
	candidates, err := f.Filter(progression)
	if err != nil {
		return model.Key{}, err
	}
	if f.State() == NeedsDisambiguation && d != nil {
		decision, err := d.Disambiguate(candidates)
		if err != nil {
			return model.Key{}, errors.Wrap(err, "could not disambiguate key")
		}
		switch {
		case decision.Key != "":
			return f.Choose(decision.Key)
		case len(decision.Extra) > 0:
			if _, err := f.Refine(decision.Extra); err != nil {
				logrus.WithError(err).Warn("Ignoring extra chords")
			}
		}
	}
	return f.Resolve(rng)
}

// NewRand seeds a generator; seed 0 means seed from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
