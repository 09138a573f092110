package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/ui/view"
)

var rootCmd = &cobra.Command{
	Use:           "studydesk",
	Short:         "Self-study desk for a fixed question bank",
	Long:          "studydesk searches study notes, grades quiz answers and keeps your progress between runs.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.Overview(sess.Corpus))
		fmt.Fprintln(out, view.Board(sess.Board()))
		fmt.Fprintln(out, view.LedgerSummary(sess.Ledger))
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYDESK_DB env var)")
	rootCmd.PersistentFlags().String("corpus", "", "Path to the corpus JSON document (overrides STUDYDESK_CORPUS env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides STUDYDESK_LOG_LEVEL env var)")

	rootCmd.AddCommand(knowledgeCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
