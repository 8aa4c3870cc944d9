package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups by primary key that match no row.
var ErrNotFound = errors.New("record not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match, LLM events only
}

// AssessmentRecord is an immutable Level-1 questionnaire result. Only
// AdminNotes may change after creation.
type AssessmentRecord struct {
	ID             int64          `json:"id"`
	UserID         string         `json:"user_id,omitempty"`
	UserName       string         `json:"user_name,omitempty"`
	UserEmail      string         `json:"user_email,omitempty"`
	Age            *int           `json:"age,omitempty"`
	AgeGroup       string         `json:"age_group,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	Address        string         `json:"address,omitempty"`
	Condition      string         `json:"condition_type"`
	Responses      map[string]any `json:"questionnaire_responses"`
	Features       map[string]any `json:"ml_features"`
	RiskScore      float64        `json:"risk_score"`
	RiskLevel      string         `json:"risk_level"`
	RiskLabel      string         `json:"risk_label"`
	RequiresLevel2 bool           `json:"requires_level2"`
	AdminNotes     string         `json:"admin_notes,omitempty"`
	CreatedAt      time.Time      `json:"assessed_at"`
}

// Level2Record is an immutable Level-2 game result.
type Level2Record struct {
	ID               int64              `json:"id"`
	UserID           string             `json:"user_id"`
	AgeGroup         string             `json:"age_group"`
	Source           string             `json:"source"`
	RawMetrics       map[string]any     `json:"raw_metrics"`
	DomainScores     map[string]float64 `json:"domain_scores"`
	FinalRiskScore   float64            `json:"final_risk_score"`
	FinalRiskPercent float64            `json:"final_risk_percent"`
	CreatedAt        time.Time          `json:"assessed_at"`
}

// ProgressRecord is the per-subject tier state. Flags only go from false
// to true and condition lists only grow.
type ProgressRecord struct {
	UserID           string    `json:"user_id"`
	Level1Completed  bool      `json:"level1_completed"`
	Level2Unlocked   bool      `json:"level2_unlocked"`
	Level2Completed  bool      `json:"level2_completed"`
	Level3Unlocked   bool      `json:"level3_unlocked"`
	Level2Conditions []string  `json:"level2_conditions"`
	Level3Conditions []string  `json:"level3_conditions"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary aggregates a subject's Level-1 history for admin listings.
type UserSummary struct {
	UserID             string `json:"user_id"`
	AssessmentCount    int    `json:"assessment_count"`
	LatestAssessmentID int64  `json:"latest_assessment_id"`
}

// AssessmentRepo stores Level-1 results.
type AssessmentRepo interface {
	// Create inserts rec and fills in its ID and CreatedAt.
	Create(ctx context.Context, rec *AssessmentRecord) error

	// Get returns the record with id or ErrNotFound.
	Get(ctx context.Context, id int64) (*AssessmentRecord, error)

	// Latest returns the newest record for userID, or nil if none exist.
	Latest(ctx context.Context, userID string) (*AssessmentRecord, error)

	// ListByUser returns all records for userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]AssessmentRecord, error)

	// SetAdminNotes replaces the reviewer annotation on record id.
	SetAdminNotes(ctx context.Context, id int64, notes string) error

	// Users summarizes every identified subject, most recent first.
	Users(ctx context.Context) ([]UserSummary, error)
}

// Level2Repo stores Level-2 results.
type Level2Repo interface {
	Create(ctx context.Context, rec *Level2Record) error
	Get(ctx context.Context, id int64) (*Level2Record, error)
	// Latest returns the newest record for userID, or nil if none exist.
	Latest(ctx context.Context, userID string) (*Level2Record, error)
	ListByUser(ctx context.Context, userID string) ([]Level2Record, error)
}

// ProgressRepo stores per-subject progression.
type ProgressRepo interface {
	// Get returns the record for userID, or a default record if none exists.
	// Inside a transaction the default row is inserted first and then locked
	// where the dialect supports it, so the caller's Save cannot race
	// another writer's first insert.
	Get(ctx context.Context, userID string) (*ProgressRecord, error)

	// Save upserts rec keyed by UserID. A zero UpdatedAt is set to now.
	Save(ctx context.Context, rec *ProgressRecord) error
}

// ChatRepo stores chat history.
type ChatRepo interface {
	Append(ctx context.Context, msg *ChatMessage) error
	// History returns the last limit messages for userID, oldest first.
	History(ctx context.Context, userID string, limit int) ([]ChatMessage, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM events by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ProgressEventData records one progression transition.
type ProgressEventData struct {
	UserID    string
	Trigger   string
	Flag      string
	Condition string
}

// ProgressEvent is a stored progression transition.
type ProgressEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	ProgressEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// AppendProgressEvent records a progression transition.
	AppendProgressEvent(ctx context.Context, data ProgressEventData) error

	// ProgressEvents returns userID's transitions in sequence order.
	ProgressEvents(ctx context.Context, userID string) ([]ProgressEvent, error)
}
