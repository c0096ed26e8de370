package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	syncFailuresTable  = "sync_failures"
	llmRequestsTable   = "llm_request_events"
)

// Tables lists every journal table, in migration order.
var Tables = []*schema.Table{
	eventTable(sessionEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "word_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "batches_completed", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "mistakes", Type: field.TypeString, Default: "[]"},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	).AddIndex("session_events_session_id", false, []string{"session_id"}),

	eventTable(answerEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "word_id", Type: field.TypeInt64},
		&schema.Column{Name: "term", Type: field.TypeString},
		&schema.Column{Name: "phase", Type: field.TypeString},
		&schema.Column{Name: "expected", Type: field.TypeString},
		&schema.Column{Name: "given", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
	).AddIndex("answer_events_word_id", false, []string{"word_id"}),

	eventTable(syncFailuresTable,
		&schema.Column{Name: "operation", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeInt64},
		&schema.Column{Name: "status", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2048},
	),

	eventTable(llmRequestsTable,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2048, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 65535, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 65535, Default: ""},
	),
}

// eventTable builds a table carrying the fields every journal event shares:
// an auto-increment id, the global sequence and a unix-millisecond timestamp.
func eventTable(name string, cols ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeInt64})
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t.AddIndex(name+"_created_at", false, []string{"created_at"})
}
