// Package engramcmder
package engramcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/engram/cmd/engram/config"
	runcmder "github.com/papercomputeco/engram/cmd/engram/run"
	servecmder "github.com/papercomputeco/engram/cmd/engram/serve"
	statuscmder "github.com/papercomputeco/engram/cmd/engram/status"
	versioncmder "github.com/papercomputeco/engram/cmd/version"
)

const engramLongDesc string = `Engram is versioned program memory.

Memory clones learn facts, roll them back, relearn them, and duplicate in
constant time while sharing all history with their source.

  engram run script.txt    Run a memory command script
  engram serve             Run the HTTP API (and MCP) server
  engram status            Show the state of a running API server
  engram config            Manage persistent configuration`

const engramShortDesc string = "Engram - Versioned Program Memory"

func NewEngramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engram",
		Short: engramShortDesc,
		Long:  engramLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .engram/ config directory")

	// Add subcommands
	cmd.AddCommand(runcmder.NewRunCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
