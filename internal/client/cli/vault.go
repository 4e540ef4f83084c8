package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewVaultCommand creates the vault command group.
func NewVaultCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Inspect and withdraw your rewards",
	}

	cmd.AddCommand(newVaultShowCommand(rootOpts))
	cmd.AddCommand(newVaultWithdrawCommand(rootOpts))

	return cmd
}

func newVaultShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show vault balances and cooldown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				v, err := c.GetVault(cmd.Context())
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), v, func(w io.Writer) {
					fmt.Fprintf(w, "owner:            %s\n", v.Vault.Owner)
					fmt.Fprintf(w, "pending:          %s\n", FormatAmount(v.Vault.PendingBalance))
					fmt.Fprintf(w, "withdrawable:     %s\n", FormatAmount(v.Vault.WithdrawableBalance))
					fmt.Fprintf(w, "withdrawable now: %s\n", FormatAmount(v.WithdrawableNow))
					fmt.Fprintf(w, "cooldown:         %s\n", FormatSeconds(v.CooldownRemaining))
					fmt.Fprintf(w, "total withdrawn:  %s\n", FormatAmount(v.Vault.TotalWithdrawn))
					fmt.Fprintf(w, "wallet:           %s\n", FormatAmount(v.WalletBalance))
				})
			})
		},
	}
}

func newVaultWithdrawCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw everything that is past its cooldown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				amount, err := c.Withdraw(cmd.Context())
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), map[string]uint64{"amount": amount}, func(w io.Writer) {
					fmt.Fprintf(w, "withdrew %s\n", FormatAmount(amount))
				})
			})
		},
	}
}
