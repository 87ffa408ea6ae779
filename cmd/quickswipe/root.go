package main

import (
	"github.com/phanxgames/quickswipe"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds state shared by subcommands, filled in by the root pre-run.
type app struct {
	configPath string
	verbosity  int

	cfg    quickswipe.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "quickswipe",
		Short: "Swipe gesture recognizer and recents animation driver",
		Long: `quickswipe recognizes navigation swipes from a multi-pointer touch stream
and drives a simulated window transition with the result.

Tunables come from defaults, an optional TOML file and QUICKSWIPE_*
environment variables, in that order.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = quickswipe.NewLogger(cmd.ErrOrStderr(), a.verbosity)
			cfg, err := quickswipe.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "quickswipe.toml", "config file (skipped if missing)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	root.AddCommand(
		newConfigCmd(a),
		newReplayCmd(a),
		newDemoCmd(a),
	)
	return root
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
}
