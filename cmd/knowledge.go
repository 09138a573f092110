package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/search"
	"github.com/studydesk/studydesk/internal/ui/theme"
	"github.com/studydesk/studydesk/internal/ui/view"
)

var knowledgeCmd = &cobra.Command{
	Use:     "knowledge [query...]",
	Aliases: []string{"k"},
	Short:   "Search study notes (optionally filtered by tag)",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")

		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		hits := sess.Knowledge(search.KnowledgeQuery{
			Text: strings.Join(args, " "),
			Tag:  tag,
		})

		out := cmd.OutOrStdout()
		if len(hits) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("没有匹配结果，建议清空筛选后重试。"))
			return nil
		}
		for _, h := range hits {
			fmt.Fprintln(out, view.KnowledgeCard(h))
		}
		fmt.Fprintf(out, "\n%d notes\n", len(hits))
		return nil
	},
}

func init() {
	knowledgeCmd.Flags().String("tag", search.All, "Only notes carrying this tag")
}
