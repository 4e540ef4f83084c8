package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/auth"
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command, which signs an access token
// with the server's JWT secret. It is meant for operators and local setups.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		user   string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token for a user",
		Long: `Sign an HS256 access token for --user with the server secret.

The secret is prompted for without echo unless --secret is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return errors.New("--user is required")
			}

			key := []byte(secret)
			if secret == "" {
				var err error
				key, err = GetSecret(cmd.ErrOrStderr(), "Enter signing secret: ")
				if err != nil {
					return err
				}
				defer common.WipeByteArray(key)
			}
			if len(key) == 0 {
				return errors.New("empty secret")
			}

			tok, err := auth.GenerateToken(user, key, ttl)
			if err != nil {
				return err
			}

			return emit(rootOpts, cmd.OutOrStdout(), map[string]string{"access_token": tok}, func(w io.Writer) {
				fmt.Fprintln(w, tok)
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user id the token is issued to")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (prompted when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "token lifetime")

	return cmd
}
