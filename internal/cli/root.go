// Package cli provides the command-line interface for undertone.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/config"
	"github.com/jmylchreest/undertone/internal/version"
)

// app holds state shared by every command of one root command instance.
type app struct {
	cfg    config.Config
	cfgErr error
	logger hclog.Logger

	verbose  bool
	quiet    bool
	logLevel string
}

// NewRootCmd builds the undertone command tree. Engine defaults come from the
// environment and an optional .env file in the working directory.
func NewRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return newRootCmd(cfg, err)
}

func newRootCmd(cfg config.Config, cfgErr error) *cobra.Command {
	a := &app{
		cfg:    cfg,
		cfgErr: cfgErr,
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "undertone",
		Short: "Classify colour undertones and seasonal palettes",
		Long: `undertone samples the pixels of an image, finds its dominant colour and
classifies it as warm, cool or neutral. It then matches the colour against the
four seasons and the twelve seasonal tones used in personal colour analysis.

Plain backdrops (white, black and grey) are filtered out before clustering, and
every verdict carries a confidence that reflects both the classification and
how uniform the sampled pixels were.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	defaultLevel := cfg.LogLevel
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose (debug) logging")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress all logging")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLevel, "log level (trace, debug, info, warn, error, off)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newClassifyCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newDistanceCmd(a))
	rootCmd.AddCommand(newTonesCmd(a))

	return rootCmd
}

// setup validates configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgErr != nil {
		return fmt.Errorf("invalid configuration: %w", a.cfgErr)
	}

	level := hclog.LevelFromString(a.logLevel)
	switch {
	case a.quiet:
		level = hclog.Off
	case a.verbose:
		level = hclog.Debug
	case level == hclog.NoLevel:
		return fmt.Errorf("invalid log level: %s", a.logLevel)
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "undertone",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, Go version and calibration table revision.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
