package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errNoCatalog = errors.New("no catalog configured, set ALIS_CATALOG_ENDPOINT")

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists the solos written so far",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every cataloged solo, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openCatalog()
		if store == nil {
			return errNoCatalog
		}
		recs, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
		for _, rec := range recs {
			fmt.Fprintf(cmd.OutOrStdout(), "%v  %-3v %5v notes  %v  %v\n",
				rec.Id, rec.Key, rec.NumNotes, humanize.Time(rec.CreatedAt), rec.Path)
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Prints one cataloged solo with its sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openCatalog()
		if store == nil {
			return errNoCatalog
		}
		rec, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printRecord(cmd, rec)
		return nil
	},
}

func printRecord(cmd *cobra.Command, rec model.SoloRecord) {
	out := cmd.OutOrStdout()
	flavor := "major"
	if rec.Minor {
		flavor = "minor"
	}
	fmt.Fprintf(out, "id: %v\n", rec.Id)
	fmt.Fprintf(out, "key: %v (%v)\n", rec.Key, flavor)
	fmt.Fprintf(out, "progression: %v\n", strings.Join(rec.Progression, ", "))
	fmt.Fprintf(out, "file: %v\n", rec.Path)
	fmt.Fprintf(out, "notes: %v\n", rec.NumNotes)
	fmt.Fprintf(out, "created: %v\n", humanize.Time(rec.CreatedAt))
	fmt.Fprintf(out, "sample: %v\n", rec.Sample)
}
