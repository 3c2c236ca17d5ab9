package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/rules"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated problems for a level (no database)",
	Long: `Generate problems and print their narratives, expected classifications
and solving assertions.

This is a stateless developer tool — no database, no progress tracking, no
events. Useful for evaluating narrative quality and testing new templates.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("level", 1, "Learner level to generate for")
	previewCmd.Flags().Int("count", 5, "Number of problems to generate")
	previewCmd.Flags().Uint64("seed", 0, "Generator seed (0 = time-based)")
	previewCmd.Flags().Bool("embellish", false, "Rewrite narratives with the configured LLM")
}

func runPreview(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	embellish, _ := cmd.Flags().GetBool("embellish")

	if level < 1 || level > rules.MaxLevel() {
		return fmt.Errorf("level must be between 1 and %d", rules.MaxLevel())
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx := context.Background()
	gen := narrative.NewGenerator(seed)

	// No event repo: preview requests are not logged.
	var emb *narrative.Embellisher
	if embellish {
		if emb = newEmbellisher(ctx, nil); emb == nil {
			return fmt.Errorf("--embellish requires a configured LLM provider")
		}
	}

	var prior []string
	for i := 1; i <= count; i++ {
		p, err := gen.Generate(level, prior)
		if err != nil {
			return fmt.Errorf("generate problem %d: %w", i, err)
		}
		prior = append(prior, p.Narrative)

		if emb != nil {
			if err := emb.Embellish(ctx, p); err != nil {
				fmt.Printf("(embellish failed: %v)\n", err)
			}
		}

		rule, err := rules.Get(p.RuleKey)
		if err != nil {
			return err
		}

		fmt.Printf("── Problem %d/%d ──\n", i, count)
		fmt.Println(p.Narrative)
		fmt.Printf("\nClassification: %s (%s, level %d)\n", rule.Name, p.RuleKey, rule.Level)
		fmt.Println("Solution:")
		for _, code := range sortedCodes(p.Solution) {
			params := p.Solution[code]
			if len(params) == 0 {
				fmt.Printf("  %s\n", code)
				continue
			}
			parts := make([]string, 0, len(params))
			for _, k := range sortedParamKeys(params) {
				parts = append(parts, k+"="+params[k])
			}
			fmt.Printf("  %s  (%s)\n", code, strings.Join(parts, ", "))
		}
		fmt.Println()
	}

	return nil
}

func sortedCodes(sel match.Selection) []assertion.Code {
	codes := make([]assertion.Code, 0, len(sel))
	for code := range sel {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func sortedParamKeys(params match.Params) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
