package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/aalp/internal/llm"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/store"
	"github.com/abhisek/aalp/internal/tui"
)

// runPractice opens the store, builds dependencies, and launches the TUI.
func runPractice(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	events := st.EventRepo()
	gen := narrative.NewGenerator(uint64(time.Now().UnixNano()))

	emb := newEmbellisher(ctx, events)
	if emb == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; narratives use template prose.")
	}

	return tui.Run(events, st.SnapshotRepo(), gen, emb)
}

// newEmbellisher builds the optional LLM narrative rewriter. Explicit
// AALP_* configuration wins; otherwise conventional provider key
// variables are probed. Returns nil when nothing is configured.
func newEmbellisher(ctx context.Context, events store.EventRepo) *narrative.Embellisher {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		var ok bool
		if cfg, ok = llm.DiscoverConfig(); !ok {
			return nil
		}
	}

	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider setup failed:", err)
		return nil
	}
	return narrative.NewEmbellisher(provider, narrative.DefaultEmbellishConfig())
}
