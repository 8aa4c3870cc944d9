package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Level2Result is one scored game-telemetry session.
type Level2Result struct {
	ent.Schema
}

func (Level2Result) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("id"),
		field.String("user_id"),
		field.String("age_group"),
		field.String("source").
			Comment("real or synthetic"),
		field.JSON("raw_metrics", map[string]any{}),
		field.JSON("domain_scores", map[string]float64{}),
		field.Float("final_risk_score"),
		field.Float("final_risk_percent"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Level2Result) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}
