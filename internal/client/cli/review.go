package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/spf13/cobra"
)

// NewReviewCommand creates the review command group.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Write, edit and remove reviews",
	}

	cmd.AddCommand(newReviewListCommand(rootOpts))
	cmd.AddCommand(newReviewSubmitCommand(rootOpts))
	cmd.AddCommand(newReviewUpdateCommand(rootOpts))
	cmd.AddCommand(newReviewDeleteCommand(rootOpts))

	return cmd
}

func newReviewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <movie-id>",
		Short: "List reviews of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				reviews, err := c.ListReviews(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), reviews, func(w io.Writer) {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tREVIEWER\tRATING\tCOMMENT")
					for _, r := range reviews {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.ReviewerName, r.Rating, r.Comment)
					}
					tw.Flush()
				})
			})
		},
	}
}

func newReviewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	req := &api.SubmitReviewRequest{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Review a movie and earn a reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				resp, err := c.SubmitReview(cmd.Context(), req)
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), resp, func(w io.Writer) {
					fmt.Fprintf(w, "submitted review %s\n", resp.Review.ID)
					fmt.Fprintf(w, "pending: %s\n", FormatAmount(resp.Vault.PendingBalance))
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.MovieID, "movie", "", "movie id")
	addReviewBodyFlags(cmd, &req.ReviewerName, &req.Rating, &req.Comment)

	return cmd
}

func newReviewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	req := &api.UpdateReviewRequest{}

	cmd := &cobra.Command{
		Use:   "update <review-id>",
		Short: "Edit one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ReviewID = args[0]
			return withClient(rootOpts, func(c Client) error {
				r, err := c.UpdateReview(cmd.Context(), req)
				if err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), r, func(w io.Writer) {
					fmt.Fprintf(w, "updated review %s\n", r.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.MovieID, "movie", "", "movie id the review must belong to")
	addReviewBodyFlags(cmd, &req.ReviewerName, &req.Rating, &req.Comment)

	return cmd
}

func newReviewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(rootOpts, func(c Client) error {
				if err := c.DeleteReview(cmd.Context(), args[0]); err != nil {
					return err
				}
				return emit(rootOpts, cmd.OutOrStdout(), map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "deleted review %s\n", args[0])
				})
			})
		},
	}
}

func addReviewBodyFlags(cmd *cobra.Command, name *string, rating *int, comment *string) {
	cmd.Flags().StringVar(name, "name", "", "reviewer display name")
	cmd.Flags().IntVar(rating, "rating", 0, "rating from 1 to 10")
	cmd.Flags().StringVar(comment, "comment", "", "review text")
}
