package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/ui/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		fmt.Fprintln(cmd.OutOrStdout(), view.Board(sess.Board()))
		return nil
	},
}

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "List questions last answered incorrectly",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		fmt.Fprintln(cmd.OutOrStdout(), view.WrongList(sess.Board().Wrong, sess))
		return nil
	},
}
