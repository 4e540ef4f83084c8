// Package cli implements vaultctl, the command-line client of the reward
// vault service.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

const (
	defaultAddr = "localhost:50051"
	envAddr     = "REVIEWVAULT_ADDR"
	envToken    = "REVIEWVAULT_TOKEN"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Addr   string
	Token  string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the vaultctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "vaultctl",
		Short:         "vaultctl talks to the reviewvault server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	addr := os.Getenv(envAddr)
	if addr == "" {
		addr = defaultAddr
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", addr, "server address (env "+envAddr+")")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv(envToken), "access token (env "+envToken+")")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewPingCommand(opts))
	cmd.AddCommand(NewMoviesCommand(opts))
	cmd.AddCommand(NewReviewCommand(opts))
	cmd.AddCommand(NewVaultCommand(opts))

	return cmd
}
