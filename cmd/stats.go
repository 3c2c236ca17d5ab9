package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aalp/internal/rules"
	"github.com/abhisek/aalp/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = s.Close() }()

		ctx := context.Background()
		repo := s.EventRepo()

		level, err := repo.MaxUnlockedLevel(ctx)
		if err != nil {
			return fmt.Errorf("query unlocks: %w", err)
		}
		if level < 1 {
			level = 1
		}
		fmt.Printf("Level: %d\n\n", level)

		// Per-level accuracy.
		fmt.Println("Accuracy by Level")
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("%-8s  %10s  %10s  %8s\n", "Level", "Attempts", "Correct", "Acc")
		fmt.Println(strings.Repeat("─", 44))
		for lvl := 1; lvl <= rules.MaxLevel(); lvl++ {
			ls, err := repo.LevelStats(ctx, lvl)
			if err != nil {
				return fmt.Errorf("query level %d: %w", lvl, err)
			}
			fmt.Printf("%-8d  %10d  %10d  %7.0f%%\n",
				lvl, ls.Attempts, ls.Correct, ls.Accuracy()*100)
		}
		fmt.Println()

		// Per-rule tallies.
		tallies, err := repo.RuleStats(ctx)
		if err != nil {
			return fmt.Errorf("query rule stats: %w", err)
		}
		if len(tallies) > 0 {
			keys := make([]string, 0, len(tallies))
			for k := range tallies {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			fmt.Println("Accuracy by Classification")
			fmt.Println(strings.Repeat("─", 60))
			fmt.Printf("%-24s  %10s  %10s  %8s\n", "Rule", "Attempts", "Correct", "Acc")
			fmt.Println(strings.Repeat("─", 60))
			for _, k := range keys {
				t := tallies[k]
				acc := 0.0
				if t.Attempts > 0 {
					acc = float64(t.Correct) / float64(t.Attempts) * 100
				}
				name := k
				if r, err := rules.Get(rules.Key(k)); err == nil {
					name = r.Name
				}
				fmt.Printf("%-24s  %10d  %10d  %7.0f%%\n", name, t.Attempts, t.Correct, acc)
			}
			fmt.Println()
		}

		// LLM usage.
		spend, err := repo.LLMSpend(ctx)
		if err != nil {
			return fmt.Errorf("query LLM spend: %w", err)
		}
		if spend.Requests > 0 {
			fmt.Println("LLM Usage")
			fmt.Println(strings.Repeat("─", 56))
			fmt.Printf("Requests: %d   Tokens: %d in / %d out   Cost: $%.4f\n",
				spend.Requests, spend.InputTokens, spend.OutputTokens, spend.CostUSD)
		}

		return nil
	},
}
