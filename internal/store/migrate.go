package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AssessmentResultsColumns holds the columns for the "assessment_results" table.
	AssessmentResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString, Nullable: true},
		{Name: "user_name", Type: field.TypeString, Nullable: true},
		{Name: "user_email", Type: field.TypeString, Nullable: true},
		{Name: "age", Type: field.TypeInt, Nullable: true},
		{Name: "age_group", Type: field.TypeString, Nullable: true},
		{Name: "gender", Type: field.TypeString, Nullable: true},
		{Name: "address", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "condition", Type: field.TypeString},
		{Name: "responses", Type: field.TypeJSON},
		{Name: "features", Type: field.TypeJSON},
		{Name: "risk_score", Type: field.TypeFloat64},
		{Name: "risk_level", Type: field.TypeString},
		{Name: "risk_label", Type: field.TypeString},
		{Name: "requires_level2", Type: field.TypeBool, Default: false},
		{Name: "admin_notes", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
	}
	// AssessmentResultsTable holds the schema information for the "assessment_results" table.
	AssessmentResultsTable = &schema.Table{
		Name:       "assessment_results",
		Columns:    AssessmentResultsColumns,
		PrimaryKey: []*schema.Column{AssessmentResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "assessmentresult_user_id", Columns: []*schema.Column{AssessmentResultsColumns[1]}},
		},
	}

	// Level2ResultsColumns holds the columns for the "level2_results" table.
	Level2ResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "age_group", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "raw_metrics", Type: field.TypeJSON},
		{Name: "domain_scores", Type: field.TypeJSON},
		{Name: "final_risk_score", Type: field.TypeFloat64},
		{Name: "final_risk_percent", Type: field.TypeFloat64},
		{Name: "created_at", Type: field.TypeTime},
	}
	// Level2ResultsTable holds the schema information for the "level2_results" table.
	Level2ResultsTable = &schema.Table{
		Name:       "level2_results",
		Columns:    Level2ResultsColumns,
		PrimaryKey: []*schema.Column{Level2ResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "level2result_user_id", Columns: []*schema.Column{Level2ResultsColumns[1]}},
		},
	}

	// UserLevelProgressColumns holds the columns for the "user_level_progress" table.
	UserLevelProgressColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "level1_completed", Type: field.TypeBool, Default: false},
		{Name: "level2_unlocked", Type: field.TypeBool, Default: false},
		{Name: "level2_completed", Type: field.TypeBool, Default: false},
		{Name: "level3_unlocked", Type: field.TypeBool, Default: false},
		{Name: "level2_conditions", Type: field.TypeJSON},
		{Name: "level3_conditions", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UserLevelProgressTable holds the schema information for the "user_level_progress" table.
	UserLevelProgressTable = &schema.Table{
		Name:       "user_level_progress",
		Columns:    UserLevelProgressColumns,
		PrimaryKey: []*schema.Column{UserLevelProgressColumns[0]},
	}

	// ProgressEventsColumns holds the columns for the "progress_events" table.
	ProgressEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
		{Name: "trigger", Type: field.TypeString},
		{Name: "flag", Type: field.TypeString},
		{Name: "condition", Type: field.TypeString, Nullable: true},
	}
	// ProgressEventsTable holds the schema information for the "progress_events" table.
	ProgressEventsTable = &schema.Table{
		Name:       "progress_events",
		Columns:    ProgressEventsColumns,
		PrimaryKey: []*schema.Column{ProgressEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progressevent_user_id", Columns: []*schema.Column{ProgressEventsColumns[3]}},
		},
	}

	// ChatMessagesColumns holds the columns for the "chat_messages" table.
	ChatMessagesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ChatMessagesTable holds the schema information for the "chat_messages" table.
	ChatMessagesTable = &schema.Table{
		Name:       "chat_messages",
		Columns:    ChatMessagesColumns,
		PrimaryKey: []*schema.Column{ChatMessagesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "chatmessage_user_id", Columns: []*schema.Column{ChatMessagesColumns[1]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "request_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "response_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AssessmentResultsTable,
		Level2ResultsTable,
		UserLevelProgressTable,
		ProgressEventsTable,
		ChatMessagesTable,
		LlmRequestEventsTable,
	}
)

// migrate creates missing tables and columns. It never drops anything.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
