package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all answers, drafts and revealed references",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "确认清空全部学习进度吗？[y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "已取消。")
				return nil
			}
		}

		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := sess.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "学习进度已清空。")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
