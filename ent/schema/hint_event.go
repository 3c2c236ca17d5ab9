package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// HintEvent records that a hint was shown after a non-correct attempt.
type HintEvent struct {
	ent.Schema
}

func (HintEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (HintEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("problem_id").NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("missing, prohibited, or would-classify"),
		field.String("code").
			Default("").
			Comment("Assertion code the hint points at, when applicable"),
		field.String("rule_key").
			Default("").
			Comment("Rule a would-classify hint names, when applicable"),
		field.String("hint_text").NotEmpty(),
	}
}

func (HintEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("kind"),
	}
}
