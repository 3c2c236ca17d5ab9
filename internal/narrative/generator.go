package narrative

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// maxDedupRetries bounds how often the generator redraws before
// accepting a repeat narrative. With randomized amounts a collision is
// already unlikely; the bound keeps Generate total.
const maxDedupRetries = 8

// Generator produces problems from the template table.
type Generator struct {
	rng  *rand.Rand
	pool []template
}

// NewGenerator creates a seeded generator. The same seed yields the
// same problem sequence, which the preview command relies on.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool: templates(),
	}
}

// Generate produces one problem at or below the given level. Narratives
// in prior are avoided where possible.
func (g *Generator) Generate(level int, prior []string) (*Problem, error) {
	eligible := g.eligible(level)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("no problem templates at level %d", level)
	}

	seen := make(map[string]bool, len(prior))
	for _, n := range prior {
		seen[n] = true
	}

	var p *Problem
	for range maxDedupRetries {
		t := eligible[g.rng.IntN(len(eligible))]
		v := draw(g.rng)
		p = &Problem{
			ID:         uuid.NewString(),
			Narrative:  t.render(v),
			RuleKey:    t.RuleKey,
			Level:      t.Level,
			TemplateID: t.ID,
			Solution:   t.solution(v),
		}
		if !seen[p.Narrative] {
			break
		}
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Generator) eligible(level int) []template {
	var out []template
	for _, t := range g.pool {
		if t.Level <= level {
			out = append(out, t)
		}
	}
	return out
}
