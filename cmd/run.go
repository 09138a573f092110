package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/session"
	"github.com/studydesk/studydesk/internal/store"
)

// resolveConfig merges the persistent flags with the environment.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var o config.Overrides
	o.DBPath, _ = cmd.Flags().GetString("db")
	o.CorpusPath, _ = cmd.Flags().GetString("corpus")
	o.LogLevel, _ = cmd.Flags().GetString("log-level")
	return config.Load(o)
}

// openSession loads the corpus, opens the store, and restores progress.
// A corpus that cannot be loaded is fatal. The returned func closes the store.
func openSession(cmd *cobra.Command) (*session.Session, func(), error) {
	ctx := cmd.Context()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.NewLogger()

	c, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sess, err := session.New(ctx, c, st.KV(), session.Options{Logger: logger})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return sess, func() { st.Close() }, nil
}
