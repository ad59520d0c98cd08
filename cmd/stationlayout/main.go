package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

// errInvalid reports a layout that failed validation. The report has
// already been printed.
var errInvalid = errors.New("layout is invalid")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "stationlayout",
		Short:         "Railway station layout editor core",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config YAML")

	rootCmd.AddCommand(validateCmd(&configPath))
	rootCmd.AddCommand(upgradeCmd(&configPath))
	rootCmd.AddCommand(inspectCmd(&configPath))
	rootCmd.AddCommand(statsCmd(&configPath))
	rootCmd.AddCommand(serveCmd(&configPath))
	return rootCmd
}

func validateCmd(configPath *string) *cobra.Command {
	var expected int

	cmd := &cobra.Command{
		Use:   "validate [layout-file]",
		Short: "Check a layout against the station's platform count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), *configPath, args[0], expected)
		},
	}
	cmd.Flags().IntVarP(&expected, "expected", "n", 0, "number of platforms the station has")
	//nolint:errcheck // flag is defined above
	cmd.MarkFlagRequired("expected")
	return cmd
}

func upgradeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade [layout-file]",
		Short: "Rewrite a layout document in the current shape on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd.OutOrStdout(), *configPath, args[0])
		},
	}
}

func inspectCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout-file]",
		Short: "Print the flattened 2D scene of a layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), *configPath, args[0])
		},
	}
}

func statsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [layout-file]",
		Short: "Summarize shop occupancy and rent per platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), *configPath, args[0])
		},
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editing server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides config)")
	return cmd
}
