package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/spf13/cobra"
)

// NewMoviesCommand creates the movies command group.
func NewMoviesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse and maintain the movie catalog",
	}

	cmd.AddCommand(newMoviesListCommand(rootOpts))
	cmd.AddCommand(newMoviesCreateCommand(rootOpts))

	return cmd
}

func newMoviesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				movies, err := c.ListMovies(cmd.Context())
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), movies, func(w io.Writer) {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tTITLE\tDIRECTOR\tHERO\tYEAR")
					for _, m := range movies {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", m.ID, m.Title, m.Director, m.Hero, m.ReleaseYear)
					}
					tw.Flush()
				})
			})
		},
	}
}

func newMoviesCreateCommand(rootOpts *RootOptions) *cobra.Command {
	req := &api.CreateMovieRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a movie (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				m, err := c.CreateMovie(cmd.Context(), req)
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), m, func(w io.Writer) {
					fmt.Fprintf(w, "created movie %s (%s, %d)\n", m.ID, m.Title, m.ReleaseYear)
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "movie title")
	cmd.Flags().StringVar(&req.Director, "director", "", "director")
	cmd.Flags().StringVar(&req.Hero, "hero", "", "lead actor")
	cmd.Flags().IntVar(&req.ReleaseYear, "year", 0, "release year")

	return cmd
}
