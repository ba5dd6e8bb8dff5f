package cmd

import (
	"fmt"

	"github.com/kondzio13/alis/melody"
	"github.com/kondzio13/alis/token"
	"github.com/spf13/cobra"
)

var encodePairing string

func init() {
	encodeCmd.Flags().StringVar(&encodePairing, "pairing", "", "note pairing: scan or stack (default from config)")
	rootCmd.AddCommand(encodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file.mid>",
	Short: "Prints the melody of a midi file as tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := melodyOptions(encodePairing)
		if err != nil {
			return err
		}
		text, err := melody.EncodeFile(args[0], opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token.Corpus([]string{text}))
		return err
	},
}

// melodyOptions applies a --pairing flag over the config.
func melodyOptions(pairing string) (melody.Options, error) {
	if pairing == "" {
		pairing = cfg.Pairing
	}
	opts := melody.DefaultOptions()
	p, err := melody.ParsePairing(pairing)
	if err != nil {
		return opts, err
	}
	opts.Pairing = p
	return opts, nil
}
