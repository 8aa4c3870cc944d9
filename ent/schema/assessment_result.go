package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AssessmentResult is one Level-1 questionnaire result. Rows are never
// updated except for admin_notes.
type AssessmentResult struct {
	ent.Schema
}

func (AssessmentResult) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("id"),
		field.String("user_id").Optional(),
		field.String("user_name").Optional(),
		field.String("user_email").Optional(),
		field.Int("age").Optional(),
		field.String("age_group").Optional(),
		field.String("gender").Optional(),
		field.Text("address").Optional(),
		field.String("condition").
			Immutable().
			Comment("adhd, asd or dementia"),
		field.JSON("responses", map[string]any{}),
		field.JSON("features", map[string]any{}).
			Comment("Derived feature vector fed to the classifier"),
		field.Float("risk_score"),
		field.String("risk_level"),
		field.String("risk_label"),
		field.Bool("requires_level2").Default(false),
		field.Text("admin_notes").Optional(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (AssessmentResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}
