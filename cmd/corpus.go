package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/kondzio13/alis/corpus"
	"github.com/kondzio13/alis/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	corpusOut      string
	corpusManifest string
	corpusJobs     int
	corpusMax      int
	corpusPairing  string
)

func init() {
	corpusCmd.Flags().StringVarP(&corpusOut, "out", "o", "", "corpus file (default <out dir>/corpus.txt)")
	corpusCmd.Flags().StringVar(&corpusManifest, "manifest", "", "also write which file each solo came from, as json")
	corpusCmd.Flags().IntVar(&corpusJobs, "jobs", 1, "files encoded at once, 0 for one per cpu")
	corpusCmd.Flags().IntVar(&corpusMax, "max", 0, "stop after this many files, 0 for all")
	corpusCmd.Flags().StringVar(&corpusPairing, "pairing", "", "note pairing: scan or stack (default from config)")
	rootCmd.AddCommand(corpusCmd)
}

var corpusCmd = &cobra.Command{
	Use:   "corpus <dir>",
	Short: "Builds a training corpus from a directory of midi files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mopts, err := melodyOptions(corpusPairing)
		if err != nil {
			return err
		}
		res, err := corpus.BuildDir(cmd.Context(), args[0], corpusMax, corpus.Options{Melody: mopts, Jobs: corpusJobs})
		if err != nil {
			return err
		}

		out := corpusOut
		if out == "" {
			if err := util.EnsureDir(cfg.OutDir); err != nil {
				return err
			}
			out = filepath.Join(cfg.OutDir, "corpus.txt")
		}
		text := res.Text()
		if err := util.WriteText(out, text); err != nil {
			return err
		}
		if corpusManifest != "" {
			if err := writeManifest(corpusManifest, res.Sources); err != nil {
				return err
			}
		}

		logrus.WithFields(logrus.Fields{
			"solos":   len(res.Solos),
			"skipped": len(res.Skipped),
			"notes":   humanize.Comma(int64(res.NumOfNotes())),
			"size":    humanize.Bytes(uint64(len(text))),
			"file":    out,
		}).Info("Wrote corpus")
		return nil
	},
}

func writeManifest(path string, sources map[uint32]string) error {
	dat, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode manifest")
	}
	return errors.Wrapf(os.WriteFile(path, dat, 0644), "could not write manifest %v", path)
}
