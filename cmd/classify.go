package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify an assertion selection from stdin (JSON in, JSON out)",
	Long: `Read a selection from stdin and print the classification result.

Input:
  {"expected": "cash-sale", "selected": {"revenue-earned": {"amount": "300"}, ...}}

This is a stateless scripting tool: nothing is recorded.`,
	RunE: runClassify,
}

type classifyInput struct {
	Expected string                       `json:"expected"`
	Selected map[string]map[string]string `json:"selected"`
}

type classifyLine struct {
	Account string  `json:"account"`
	Side    string  `json:"side"`
	Amount  float64 `json:"amount"`
	Detail  string  `json:"detail,omitempty"`
	Source  string  `json:"source"`
}

type classifyOutput struct {
	Status  string   `json:"status"`
	Matched []string `json:"matched,omitempty"`
	Nearest *struct {
		Rule     string   `json:"rule"`
		Missing  []string `json:"missing,omitempty"`
		Extra    []string `json:"extra,omitempty"`
		Distance int      `json:"distance"`
	} `json:"nearest,omitempty"`
	Hints []string       `json:"hints,omitempty"`
	Entry []classifyLine `json:"entry,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	var input classifyInput
	if err := json.NewDecoder(os.Stdin).Decode(&input); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if input.Expected == "" {
		return fmt.Errorf("missing expected rule key")
	}
	if _, err := rules.Get(rules.Key(input.Expected)); err != nil {
		return err
	}

	selection := make(match.Selection, len(input.Selected))
	for code, params := range input.Selected {
		selection[assertion.Code(code)] = match.Params(params)
	}

	result, err := match.Classify(selection, rules.Key(input.Expected))
	if err != nil {
		return err
	}

	out := classifyOutput{Status: result.Status.String()}
	for _, key := range result.Matched {
		out.Matched = append(out.Matched, string(key))
	}
	if result.Nearest != nil {
		out.Nearest = &struct {
			Rule     string   `json:"rule"`
			Missing  []string `json:"missing,omitempty"`
			Extra    []string `json:"extra,omitempty"`
			Distance int      `json:"distance"`
		}{
			Rule:     string(result.Nearest.Rule),
			Missing:  codesToStrings(result.Nearest.Missing),
			Extra:    codesToStrings(result.Nearest.Extra),
			Distance: result.Nearest.Distance,
		}
	}
	for _, h := range result.Hints {
		out.Hints = append(out.Hints, h.Text)
	}
	if result.Entry != nil {
		for _, line := range result.Entry.Lines {
			out.Entry = append(out.Entry, classifyLine{
				Account: string(line.Account),
				Side:    line.Side.String(),
				Amount:  line.Amount,
				Detail:  line.Detail,
				Source:  string(line.Source.Assertion),
			})
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func codesToStrings(codes []assertion.Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}
