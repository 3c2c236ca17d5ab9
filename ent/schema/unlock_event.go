package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UnlockEvent records a level transition for audit and stats.
type UnlockEvent struct {
	ent.Schema
}

func (UnlockEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (UnlockEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Int("from_level"),
		field.Int("to_level"),
		field.Int("attempts").
			Comment("Attempts at from_level when the unlock fired"),
		field.Float("accuracy").
			Comment("Accuracy at from_level when the unlock fired"),
		field.String("session_id").Optional(),
	}
}

func (UnlockEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("to_level"),
	}
}
