package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/ui/theme"
	"github.com/studydesk/studydesk/internal/ui/view"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every knowledge tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		for _, tag := range sess.Corpus.Tags() {
			fmt.Fprintln(out, theme.Badge.Render(tag))
		}
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List every question source (values for quiz --source)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		for _, src := range sess.Corpus.Sources() {
			fmt.Fprintln(out, theme.Badge.Render(src))
		}
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs [query...]",
	Short: "Browse the document library, or preview one with --id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")

		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		if id != "" {
			// Unknown ids fall back to the first document.
			d, ok := sess.Corpus.Document(id)
			if !ok {
				fmt.Fprintln(out, view.Documents(nil))
				return nil
			}
			fmt.Fprintln(out, view.Documents([]corpus.Document{d}))
			return nil
		}
		fmt.Fprintln(out, view.Documents(sess.Documents(strings.Join(args, " "))))
		return nil
	},
}

func init() {
	docsCmd.Flags().String("id", "", "Preview the document with this id")
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show corpus totals and data-quality warnings",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.Overview(sess.Corpus))
		for _, is := range sess.Issues() {
			fmt.Fprintln(out, theme.Warning.Render(is.String()))
		}
		return nil
	},
}
