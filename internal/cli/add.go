package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/comment"
)

func newAddCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   `add "text"`,
		Short: "Add a comment",
		Long:  "Add a comment. The author comes from --author, $COMMENTS_AUTHOR, or the CLI config.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, author)
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "comment author")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string, authorFlag string) error {
	draft := comment.Draft{
		Text:   strings.Join(args, " "),
		Author: getAuthor(authorFlag),
	}.Normalize()
	if err := draft.Validate(); err != nil {
		var verr *comment.ValidationError
		if errors.As(err, &verr) && verr.Field == "author" && verr.Rule == "required" {
			return fmt.Errorf("%w (use --author or 'comments config set author NAME')", err)
		}
		return err
	}

	c, err := newAPIClient().AddComment(draft.Text, draft.Author)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	printCommentSingle(cmd.OutOrStdout(), c)
	return nil
}
