package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LedgerEvent records one side of a journal entry posted to the
// simulated ledger after a correct classification. The running account
// balances are a pure fold over these events.
type LedgerEvent struct {
	ent.Schema
}

func (LedgerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LedgerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("problem_id").NotEmpty(),
		field.String("rule_key").
			NotEmpty().
			Comment("Classification that produced this entry"),
		field.String("account").
			NotEmpty().
			Comment("Ledger account label"),
		field.String("side").
			NotEmpty().
			Comment("DR or CR"),
		field.Float("amount"),
		field.String("detail").
			Default("").
			Comment("Human-readable context from the linked parameters"),
	}
}

func (LedgerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("account"),
	}
}
