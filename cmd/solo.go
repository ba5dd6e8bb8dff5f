package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kondzio13/alis/catalog"
	"github.com/kondzio13/alis/constants"
	"github.com/kondzio13/alis/key"
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
	"github.com/kondzio13/alis/sample"
	"github.com/kondzio13/alis/solo"
	"github.com/kondzio13/alis/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	soloOut       string
	soloTieBreak  string
	soloTickScale uint32
	soloAll       bool
	soloLastKey   bool
)

func init() {
	soloCmd.Flags().StringVarP(&soloOut, "out", "o", "", "midi file to write (default <out dir>/<uuid>.mid)")
	soloCmd.Flags().StringVar(&soloTieBreak, "tie-break", "", "order of events on one tick: reference or on-before-off (default from config)")
	soloCmd.Flags().Uint32Var(&soloTickScale, "tick-scale", 0, "multiply every decoded tick (default from config)")
	soloCmd.Flags().BoolVar(&soloAll, "all", false, "decode every solo in the sample, not only the first")
	soloCmd.Flags().BoolVar(&soloLastKey, "last-key", false, "fit to the last key found when no progression or key is given")
	addKeyFlags(soloCmd)
	rootCmd.AddCommand(soloCmd)
}

var soloCmd = &cobra.Command{
	Use:   "solo <sample.txt|->",
	Short: "Turns a model sample into a midi solo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := sample.Read(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if !sample.IsPrimed(text) {
			logrus.Warn("Sample does not start with the prime, the first token may be cut")
		}

		req, err := parseKeyRequest(keyProgression, keyExtra, keyName)
		if err != nil {
			return err
		}
		if soloLastKey && req.key == "" && len(req.progression) == 0 {
			req.key = cfg.LastKey
		}
		k, fitted, err := pickKey(req, keyInteractive, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if fitted {
			rememberKey(k)
		}

		d, err := newDecoder(k, fitted, soloTieBreak, soloTickScale)
		if err != nil {
			return err
		}

		solos := sample.Solos(text)
		if !soloAll && len(solos) > 1 {
			solos = solos[:1]
		}
		store := openCatalog()
		for i, s := range solos {
			path := soloPath(soloOut, i, len(solos))
			res, err := d.DecodeToFile(s, path)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"file": path, "notes": len(res.Notes), "key": k.Name}).Info("Wrote solo")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if store != nil {
				recordSolo(cmd.Context(), store, catalog.NewRecord(k, req.progression, path, len(res.Notes), s))
			}
		}
		return nil
	},
}

// newDecoder applies flags over the config. A key is only fitted to when
// one was found.
func newDecoder(k model.Key, fitted bool, tieBreak string, tickScale uint32) (*solo.Decoder, error) {
	if tieBreak == "" {
		tieBreak = cfg.TieBreak
	}
	tb, err := solo.ParseTieBreak(tieBreak)
	if err != nil {
		return nil, err
	}
	if tickScale == 0 {
		tickScale = cfg.TickScale
	}
	preamble, err := midi.LoadPreamble(constants.GetPreamblePath())
	if err != nil {
		return nil, err
	}

	opts := []solo.Option{solo.WithPreamble(preamble), solo.WithTieBreak(tb), solo.WithTickScale(tickScale)}
	if fitted {
		opts = append(opts, solo.WithFitter(key.NewQuantizer(k, newRand())))
	}
	return solo.NewDecoder(opts...)
}

func soloPath(out string, i int, n int) string {
	if out == "" {
		if err := util.EnsureDir(cfg.OutDir); err != nil {
			logrus.WithError(err).Warn("Could not create out dir")
		}
		return filepath.Join(cfg.OutDir, uuid.New().String()+".mid")
	}
	if n == 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%d%s", out[:len(out)-len(ext)], i+1, ext)
}

// openCatalog returns nil unless a catalog endpoint is configured.
func openCatalog() catalog.Store {
	endpoint := constants.GetCatalogEndpoint()
	if endpoint == "" {
		return nil
	}
	store, err := catalog.NewDynamoStore(endpoint, constants.GetCatalogRegion(), constants.GetCatalogTable())
	if err != nil {
		logrus.WithError(err).Warn("Solos will not be cataloged")
		return nil
	}
	return store
}

func recordSolo(ctx context.Context, store catalog.Store, rec model.SoloRecord) {
	if err := store.Put(ctx, rec); err != nil {
		logrus.WithError(err).WithField("id", rec.Id).Warn("Could not catalog solo")
	}
}
