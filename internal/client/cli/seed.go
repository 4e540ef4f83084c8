package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command, which prints a fresh random
// authority seed for the server configuration.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random authority seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 16 {
				return fmt.Errorf("seed must be at least 16 bytes, got %d", size)
			}
			seed, err := common.MakeRandHexString(size)
			if err != nil {
				return err
			}
			return emit(rootOpts, cmd.OutOrStdout(), map[string]string{"authority_seed": seed}, func(w io.Writer) {
				fmt.Fprintln(w, seed)
			})
		},
	}

	cmd.Flags().IntVar(&size, "bytes", 32, "seed length in bytes")

	return cmd
}

// NewPingCommand creates the ping command.
func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				st, err := c.Ping(cmd.Context())
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), map[string]string{"status": st}, func(w io.Writer) {
					fmt.Fprintln(w, st)
				})
			})
		},
	}
}
