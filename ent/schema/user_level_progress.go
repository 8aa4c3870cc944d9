package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// UserLevelProgress is the per-subject tier state, keyed by user_id.
type UserLevelProgress struct {
	ent.Schema
}

func (UserLevelProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("user_id").
			Immutable(),
		field.Bool("level1_completed").Default(false),
		field.Bool("level2_unlocked").Default(false),
		field.Bool("level2_completed").Default(false),
		field.Bool("level3_unlocked").Default(false),
		field.JSON("level2_conditions", []string{}).
			Comment("Conditions flagged for Level 2, append-only"),
		field.JSON("level3_conditions", []string{}),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
