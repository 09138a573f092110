package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/session"
	"github.com/studydesk/studydesk/internal/ui/theme"
	"github.com/studydesk/studydesk/internal/ui/view"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id> <letters...>",
	Short: "Answer an objective question, e.g. `answer B-3 A C`",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := sess.Submit(cmd.Context(), args[0], splitLetters(args[1:]))
		out := cmd.OutOrStdout()
		if errors.Is(err, session.ErrEmptySelection) {
			fmt.Fprintln(out, theme.Warning.Render("请先选择答案后再提交。"))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, view.QuestionCard(res.Question, res.Record, true, sess.Key))
		return nil
	},
}

// splitLetters accepts "A C", "A,C" and "AC" forms.
func splitLetters(args []string) []string {
	var out []string
	for _, a := range args {
		for _, part := range strings.FieldsFunc(a, func(r rune) bool { return r == ',' || r == ' ' }) {
			for _, r := range part {
				out = append(out, string(r))
			}
		}
	}
	return out
}

var clearCmd = &cobra.Command{
	Use:   "clear <question-id>",
	Short: "Clear an answer to retry the question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		cleared, err := sess.Clear(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !cleared {
			fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("尚未作答，无需清空。"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "已清空", args[0])
		return nil
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal <question-id>",
	Short: "Show or hide the reference answer of a subjective question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		rec, err := sess.ToggleReference(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		q, _ := sess.Corpus.Question(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), view.QuestionCard(q, rec, true, sess.Key))
		return nil
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft <question-id> <text...>",
	Short: "Save your own answer to a subjective question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		rec, err := sess.SaveDraft(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		q, _ := sess.Corpus.Question(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), view.QuestionCard(q, rec, true, sess.Key))
		return nil
	},
}
