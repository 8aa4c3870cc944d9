package schema

import (
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogniwise/cogniwise/internal/store"
)

type described interface {
	Fields() []ent.Field
	Mixin() []ent.Mixin
}

func columnsOf(s described) map[string]string {
	out := map[string]string{}
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, s.Fields()...)
	for _, f := range fields {
		d := f.Descriptor()
		name := d.Name
		if d.StorageKey != "" {
			name = d.StorageKey
		}
		out[name] = d.Info.Type.String()
	}
	return out
}

// The store migrates from hand-kept tables; they must match these entities.
func TestEntitiesMatchMigratedTables(t *testing.T) {
	cases := map[string]described{
		"assessment_results":  AssessmentResult{},
		"level2_results":      Level2Result{},
		"user_level_progress": UserLevelProgress{},
		"progress_events":     ProgressEvent{},
		"chat_messages":       ChatMessage{},
		"llm_request_events":  LLMRequestEvent{},
	}
	require.Len(t, store.Tables, len(cases))

	for _, table := range store.Tables {
		entity, ok := cases[table.Name]
		require.True(t, ok, "no entity for table %s", table.Name)

		want := map[string]string{}
		for _, c := range table.Columns {
			want[c.Name] = c.Type.String()
		}
		assert.Equal(t, want, columnsOf(entity), table.Name)
	}
}

func TestEventTablesUseMixin(t *testing.T) {
	for _, table := range []*entschema.Table{store.ProgressEventsTable, store.LlmRequestEventsTable} {
		var seq *entschema.Column
		for _, c := range table.Columns {
			if c.Name == "sequence" {
				seq = c
			}
		}
		require.NotNil(t, seq, table.Name)
		assert.True(t, seq.Unique, table.Name)
	}
}
