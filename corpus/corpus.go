package corpus

import (
	"context"
	"runtime"
	"sync"

	"github.com/kondzio13/alis/melody"
	"github.com/kondzio13/alis/token"
	"github.com/kondzio13/alis/util"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Melody melody.Options
	// Jobs is the number of files encoded at once; 0 means one per CPU.
	Jobs int
}

func DefaultOptions() Options {
	return Options{Melody: melody.DefaultOptions(), Jobs: 1}
}

type Result struct {
	Solos []string
	// Sources maps the position of a solo in the corpus to its midi file.
	Sources map[uint32]string
	Skipped []string
}

func (r *Result) Text() string {
	return token.Corpus(r.Solos)
}

// NumOfNotes counts the tokens of every solo.
func (r *Result) NumOfNotes() int {
	var n int
	for _, s := range r.Solos {
		n += len(token.Tokenize(s))
	}
	return n
}

type outcome struct {
	text string
	err  error
}

// Build encodes every file and joins the solos in path order, whatever
// order the workers finish in. Files that cannot be encoded are skipped.
func Build(ctx context.Context, paths []string, opts Options) (*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = util.Min(jobs, util.Max(len(paths), 1))

	outcomes := make([]outcome, len(paths))
	queue := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				text, err := melody.EncodeFile(paths[i], opts.Melody)
				outcomes[i] = outcome{text: text, err: err}
			}
		}()
	}

	var cancelled error
Feed:
	for i := range paths {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		logrus.WithField("file", paths[i]).Infof("Processing %v of %v midi files", i+1, len(paths))
		select {
		case queue <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break Feed
		}
	}
	close(queue)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	res := &Result{Sources: make(map[uint32]string)}
	for i, o := range outcomes {
		if o.err != nil {
			logrus.WithError(o.err).WithField("file", paths[i]).Warn("Skipping file")
			res.Skipped = append(res.Skipped, paths[i])
			continue
		}
		res.Sources[uint32(len(res.Solos))] = paths[i]
		res.Solos = append(res.Solos, o.text)
	}
	return res, nil
}

// BuildDir encodes the midi files below dir; maxNum of 0 means all of them.
func BuildDir(ctx context.Context, dir string, maxNum int, opts Options) (*Result, error) {
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return nil, err
	}
	return Build(ctx, paths, opts)
}
