// Package cli builds the cnc-simulator command tree.
//
//	cnc-simulator serve      run the simulator with the HTTP API
//	cnc-simulator simulate   step the engine offline and print snapshots
//
// Both commands read config.yml from --config (default "configs") and CNC_*
// environment overrides.
package cli

import (
	"github.com/spf13/cobra"
)

const defaultConfigDir = "configs"

// BuildCLI returns the root command.
func BuildCLI() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "cnc-simulator",
		Short:         "Simulated CNC machining center",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", defaultConfigDir, "directory containing config.yml")

	root.AddCommand(buildServeCommand(&configDir))
	root.AddCommand(buildSimulateCommand(&configDir))
	return root
}
