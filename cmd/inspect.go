package cmd

import (
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints the rows of a midi file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		return midi.WriteRows(cmd.OutOrStdout(), midi.ToRows(s))
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <rows.csv> <file.mid>",
	Short: "Writes a midi file from rows",
	Long:  `Writes a midi file from rows, the inverse of inspect.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !util.IsMidiPath(args[1]) {
			return errNotMidiPath(args[1])
		}
		rows, err := midi.ReadRowsFile(args[0])
		if err != nil {
			return err
		}
		return midi.WriteRowsAsMidi(args[1], rows)
	},
}

func errNotMidiPath(path string) error {
	return errors.Errorf("%v is not a .mid or .midi path", path)
}
