package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/key"
	"github.com/kondzio13/alis/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	keyProgression string
	keyName        string
	keyExtra       string
	keyInteractive bool
)

func init() {
	addKeyFlags(keyCmd)
	rootCmd.AddCommand(keyCmd)
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyProgression, "progression", "", `chords and bars, e.g. "C:2, am:2, F:1, G:1"`)
	cmd.Flags().StringVar(&keyName, "key", "", "the key, when already known")
	cmd.Flags().StringVar(&keyExtra, "extra", "", "more chords of the song, to narrow the candidates")
	cmd.Flags().BoolVar(&keyInteractive, "interactive", false, "ask on the terminal when more than one key fits")
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Finds the key of a chord progression",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parseKeyRequest(keyProgression, keyExtra, keyName)
		if err != nil {
			return err
		}
		if len(req.progression) == 0 {
			return key.ErrEmptyProgression
		}
		k, _, err := pickKey(req, keyInteractive, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		rememberKey(k)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), k.Name)
		return err
	},
}

type keyRequest struct {
	progression model.Progression
	extra       []model.ChordSymbol
	key         string
}

func splitChords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' })
}

func parseKeyRequest(progression string, extra string, name string) (keyRequest, error) {
	var req keyRequest
	p, err := chord.ParseProgression(progression)
	if err != nil {
		return req, err
	}
	e, err := chord.ParseAll(splitChords(extra))
	if err != nil {
		return req, err
	}
	return keyRequest{progression: p, extra: e, key: strings.TrimSpace(name)}, nil
}

// pickKey settles on a key: from the progression when there is one, else
// from a key name. ok is false when there was nothing to go on.
func pickKey(req keyRequest, interactive bool, in io.Reader, out io.Writer) (model.Key, bool, error) {
	if len(req.progression) == 0 {
		if req.key == "" {
			return model.Key{}, false, nil
		}
		k, err := key.KeyFromName(req.key)
		return k, err == nil, err
	}

	var d key.Disambiguator = key.Fixed{Key: req.key, Extra: req.extra}
	if interactive {
		d = key.Prompt{In: in, Out: out}
	}
	k, err := key.Resolve(key.NewFinder(chord.BuildChart()), req.progression, d, newRand())
	return k, err == nil, err
}

func rememberKey(k model.Key) {
	cfg.LastKey = k.Name
	if err := cfg.Save(); err != nil {
		logrus.WithError(err).Warn("Could not remember key")
	}
}
