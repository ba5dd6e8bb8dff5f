package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/sample"
	"github.com/kondzio13/alis/solo"
	"github.com/kondzio13/alis/token"
	"github.com/kondzio13/alis/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <corpus.txt>",
	Short: "Summarizes a corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dat, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "could not read corpus %v", args[0])
		}
		r := analyzeCorpus(string(dat))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "size: %v\n", humanize.Bytes(uint64(len(dat))))
		fmt.Fprintf(out, "solos: %v\n", humanize.Comma(int64(r.numSolos)))
		fmt.Fprintf(out, "notes: %v\n", humanize.Comma(int64(util.Sum(r.notesPerSolo))))
		fmt.Fprintf(out, "longest solo: %v notes\n", humanize.Comma(int64(r.maxNotes)))
		fmt.Fprintf(out, "distinct pitches: %v\n", len(r.pitches))
		fmt.Fprintf(out, "pitches: %v\n", util.SortedKeys(r.pitches))
		fmt.Fprintf(out, "bars: %v\n", humanize.Comma(int64(r.bars)))
		return nil
	},
}

type corpusReport struct {
	numSolos     int
	notesPerSolo []int
	maxNotes     int
	pitches      map[uint8]int
	bars         uint64
}

func analyzeCorpus(text string) corpusReport {
	r := corpusReport{pitches: make(map[uint8]int)}
	for _, s := range sample.Solos(text) {
		notes := token.Parse(token.StripTags(s))
		r.numSolos++
		r.notesPerSolo = append(r.notesPerSolo, len(notes))
		r.maxNotes = util.Max(r.maxNotes, len(notes))
		var end uint32
		for _, n := range notes {
			r.pitches[n.Pitch]++
			end = util.Max(end, n.End)
		}
		r.bars += solo.CloseBar(uint64(end)) / constants.BarLength
	}
	return r
}
