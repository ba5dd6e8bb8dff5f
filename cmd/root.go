package cmd

import (
	"os"

	"github.com/kondzio13/alis/config"
	"github.com/kondzio13/alis/key"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	seed     int64
	cfg      = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "alis",
	Short: "Melody token codec and key engine",
	Long: `alis turns the melody of midi performances into compact token text for
training a character model, and turns model samples back into midi solos
fitted to the key of a chord progression.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "bad --log-level")
		}
		logrus.SetLevel(level)

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func defaultLogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel(), "panic, fatal, error, warn, info, debug or trace")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for key picks and quantizing, 0 seeds from the clock")
}

func newRand() key.Rand {
	return key.NewRand(seed)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
