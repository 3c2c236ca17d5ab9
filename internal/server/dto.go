package server

import (
	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/rules"
)

type parameterDTO struct {
	Key              string   `json:"key"`
	Label            string   `json:"label"`
	Type             string   `json:"type"`
	Options          []string `json:"options,omitempty"`
	Optional         bool     `json:"optional,omitempty"`
	ConditionalOn    string   `json:"conditional_on,omitempty"`
	ConditionalValue string   `json:"conditional_value,omitempty"`
}

type assertionDTO struct {
	Code        string         `json:"code"`
	Label       string         `json:"label"`
	Level       int            `json:"level"`
	Description string         `json:"description,omitempty"`
	Parameters  []parameterDTO `json:"parameters,omitempty"`
}

type domainGroupDTO struct {
	Domain     string         `json:"domain"`
	Display    string         `json:"display"`
	Assertions []assertionDTO `json:"assertions"`
}

func toDomainGroups(groups []assertion.DomainGroup) []domainGroupDTO {
	out := make([]domainGroupDTO, 0, len(groups))
	for _, g := range groups {
		dg := domainGroupDTO{
			Domain:  string(g.Domain),
			Display: assertion.DomainDisplayName(g.Domain),
		}
		for _, d := range g.Definitions {
			dg.Assertions = append(dg.Assertions, toAssertionDTO(d))
		}
		out = append(out, dg)
	}
	return out
}

func toAssertionDTO(d assertion.Definition) assertionDTO {
	dto := assertionDTO{
		Code:        string(d.Code),
		Label:       d.Label,
		Level:       d.Level,
		Description: d.Description,
	}
	for _, p := range d.Parameters {
		dto.Parameters = append(dto.Parameters, parameterDTO{
			Key:              p.Key,
			Label:            p.Label,
			Type:             p.Type.Label(),
			Options:          p.Options,
			Optional:         p.Optional,
			ConditionalOn:    p.ConditionalOn,
			ConditionalValue: p.ConditionalValue,
		})
	}
	return dto
}

type ruleDTO struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required"`
	Prohibited  []string `json:"prohibited,omitempty"`
}

func toRuleDTO(r rules.Rule) ruleDTO {
	dto := ruleDTO{
		Key:         string(r.Key),
		Name:        r.Name,
		Level:       r.Level,
		Description: r.Description,
		Required:    codeStrings(r.Required),
		Prohibited:  codeStrings(r.Prohibited),
	}
	return dto
}

func codeStrings(codes []assertion.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

type problemDTO struct {
	ID        string `json:"id"`
	Narrative string `json:"narrative"`
	RuleKey   string `json:"rule_key"`
	Level     int    `json:"level"`
}

func toProblemDTO(p *narrative.Problem) problemDTO {
	return problemDTO{
		ID:        p.ID,
		Narrative: p.Narrative,
		RuleKey:   string(p.RuleKey),
		Level:     p.Level,
	}
}

// classifyRequest is the submission payload: the expected classification
// and the learner's selection, codes mapped to parameter values.
type classifyRequest struct {
	Expected string                       `json:"expected"`
	Selected map[string]map[string]string `json:"selected"`
}

func (req classifyRequest) selection() match.Selection {
	sel := make(match.Selection, len(req.Selected))
	for code, params := range req.Selected {
		p := make(match.Params, len(params))
		for k, v := range params {
			p[k] = v
		}
		sel[assertion.Code(code)] = p
	}
	return sel
}

type nearestDTO struct {
	Rule     string   `json:"rule"`
	Missing  []string `json:"missing,omitempty"`
	Extra    []string `json:"extra,omitempty"`
	Distance int      `json:"distance"`
}

type hintDTO struct {
	Kind string `json:"kind"`
	Code string `json:"code,omitempty"`
	Rule string `json:"rule,omitempty"`
	Text string `json:"text"`
}

type entryLineDTO struct {
	Account string  `json:"account"`
	Side    string  `json:"side"`
	Amount  float64 `json:"amount"`
	Detail  string  `json:"detail,omitempty"`
}

type entryDTO struct {
	Rule  string         `json:"rule"`
	Lines []entryLineDTO `json:"lines"`
}

type classifyResponse struct {
	Status  string      `json:"status"`
	Matched []string    `json:"matched,omitempty"`
	Nearest *nearestDTO `json:"nearest,omitempty"`
	Hints   []hintDTO   `json:"hints,omitempty"`
	Entry   *entryDTO   `json:"entry,omitempty"`
}

func toClassifyResponse(res *match.MatchResult) classifyResponse {
	out := classifyResponse{Status: res.Status.String()}
	for _, key := range res.Matched {
		out.Matched = append(out.Matched, string(key))
	}
	if res.Nearest != nil {
		out.Nearest = &nearestDTO{
			Rule:     string(res.Nearest.Rule),
			Missing:  codeStrings(res.Nearest.Missing),
			Extra:    codeStrings(res.Nearest.Extra),
			Distance: res.Nearest.Distance,
		}
	}
	for _, h := range res.Hints {
		out.Hints = append(out.Hints, hintDTO{
			Kind: hintKind(h.Kind),
			Code: string(h.Code),
			Rule: string(h.Rule),
			Text: h.Text,
		})
	}
	if res.Entry != nil {
		entry := &entryDTO{Rule: string(res.Entry.Rule)}
		for _, line := range res.Entry.Lines {
			entry.Lines = append(entry.Lines, entryLineDTO{
				Account: string(line.Account),
				Side:    line.Side.String(),
				Amount:  line.Amount,
				Detail:  line.Detail,
			})
		}
		out.Entry = entry
	}
	return out
}

func hintKind(k match.HintKind) string {
	switch k {
	case match.HintProhibited:
		return "prohibited"
	case match.HintWouldClassify:
		return "would-classify"
	default:
		return "missing"
	}
}

type progressDTO struct {
	Level   int                 `json:"level"`
	MaxLvl  int                 `json:"max_level"`
	Tallies map[string]tallyDTO `json:"tallies"`
}

type tallyDTO struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}
