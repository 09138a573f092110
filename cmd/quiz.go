package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/search"
	"github.com/studydesk/studydesk/internal/ui/theme"
	"github.com/studydesk/studydesk/internal/ui/view"
)

var quizCmd = &cobra.Command{
	Use:     "quiz [query...]",
	Aliases: []string{"q"},
	Short:   "List quiz questions (filter by source, type or past mistakes)",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		qtype, _ := cmd.Flags().GetString("type")
		wrongOnly, _ := cmd.Flags().GetBool("wrong")
		page, _ := cmd.Flags().GetInt("page")

		if !isAllFilter(qtype) && !knownType(qtype) {
			return fmt.Errorf("unknown question type %q", qtype)
		}

		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if sources := sess.Corpus.Sources(); !isAllFilter(source) && !slices.Contains(sources, source) {
			return fmt.Errorf("unknown source %q (available: %s)", source, strings.Join(sources, ", "))
		}

		p := sess.Questions(search.QuizQuery{
			Text:      strings.Join(args, " "),
			Source:    source,
			Type:      qtype,
			WrongOnly: wrongOnly,
		}, page)

		out := cmd.OutOrStdout()
		if p.Total == 0 {
			fmt.Fprintln(out, theme.Hint.Render("当前筛选下没有题目，建议重置筛选条件。"))
			return nil
		}
		fmt.Fprintln(out, view.Pager(p.Total, p.Number, p.TotalPages))
		for _, h := range p.Items {
			rec, touched := sess.Record(h.Item.ID)
			fmt.Fprintln(out, view.QuestionCard(h.Item, rec, touched, sess.Key))
		}
		fmt.Fprintln(out, view.Pager(p.Total, p.Number, p.TotalPages))
		return nil
	},
}

func isAllFilter(s string) bool {
	return s == "" || s == search.All
}

func knownType(s string) bool {
	return slices.Contains(corpus.Types(), corpus.QuestionType(s))
}

func init() {
	quizCmd.Flags().String("source", search.All, "Only questions from this source")
	quizCmd.Flags().String("type", search.All, "Only questions of this type (single, multiple, truefalse, short, flash)")
	quizCmd.Flags().Bool("wrong", false, "Only questions last answered incorrectly")
	quizCmd.Flags().Int("page", 1, "Page number (10 questions per page)")
}
