package assessment

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cogniwise/cogniwise/internal/store"
	"github.com/cogniwise/cogniwise/internal/telemetry"
)

// Level1Submission is a questionnaire submission. Subject fields are
// optional; an anonymous submission touches no progress record.
type Level1Submission struct {
	UserID    string         `json:"user_id"`
	UserName  string         `json:"user_name"`
	UserEmail string         `json:"user_email"`
	Age       FlexInt        `json:"age"`
	AgeGroup  string         `json:"age_group"`
	Gender    string         `json:"gender"`
	Address   string         `json:"address"`
	Condition string         `json:"condition"`
	Features  map[string]any `json:"features"`
	Responses map[string]any `json:"questionnaire_responses"`
}

// Level2Submission is a game-battery submission. Non-empty GameScores
// selects real scoring; otherwise Telemetry is scored, and when that is
// empty too a synthetic draw is scored.
type Level2Submission struct {
	UserID     string          `json:"user_id"`
	AgeGroup   string          `json:"age_group"`
	GameScores json.RawMessage `json:"game_scores,omitempty"`
	Telemetry  json.RawMessage `json:"telemetry,omitempty"`
}

// Level2Outcome is the response to a Level-2 submission.
type Level2Outcome struct {
	Record         *store.Level2Record     `json:"results"`
	Domains        []telemetry.DomainScore `json:"domains"`
	Level3Unlocked bool                    `json:"level3_unlocked"`
}

// AdminUser is one row of the reviewer's subject listing.
type AdminUser struct {
	UserID        string                `json:"user_id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Age           *int                  `json:"age"`
	Gender        string                `json:"gender"`
	Address       string                `json:"address"`
	AgeGroup      string                `json:"age_group"`
	Assessments   int                   `json:"assessment_count"`
	LastAssessed  time.Time             `json:"last_assessed"`
	LevelProgress *store.ProgressRecord `json:"level_progress"`
}

// FlexInt decodes an integer sent as a JSON number or numeric string.
// Anything else, including null, leaves it unset.
type FlexInt struct {
	Value int
	Set   bool
}

// IntP returns the value as a pointer, nil when unset.
func (f FlexInt) IntP() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt{Value: n, Set: true}
		return nil
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt{Value: int(x), Set: true}
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// present reports whether raw carries a non-empty JSON value.
func present(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	switch string(t) {
	case "", "null", "{}", "[]", `""`, "false", "0":
		return false
	}
	return true
}
