package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one classification attempt: the problem shown,
// the assertions the learner selected, and how the engine judged them.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("problem_id").
			NotEmpty().
			Comment("Generated problem this attempt answered"),
		field.String("rule_key").
			NotEmpty().
			Comment("Expected classification for the problem"),
		field.Int("level").
			Comment("Learner level when the problem was served"),
		field.String("narrative").
			NotEmpty().
			Comment("The transaction narrative shown"),
		field.JSON("selected_codes", []string{}).
			Optional().
			Comment("Assertion codes the learner selected"),
		field.JSON("matched_rules", []string{}).
			Optional().
			Comment("Rule keys the selection satisfied"),
		field.String("status").
			NotEmpty().
			Comment("incomplete, correct, incorrect, or indeterminate"),
		field.Int("distance").
			Default(0).
			Comment("Distance to the nearest rule (0 when correct)"),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds from problem shown to submission"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("rule_key"),
		index.Fields("status"),
		index.Fields("level"),
	}
}
