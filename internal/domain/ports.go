package domain

import "time"

// ConfigLoader reads typeguard settings.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// ToolSchemas is the input and output schema pair of one tool. Either may be
// nil, meaning the tool has no schema in that direction.
type ToolSchemas struct {
	Input  *Schema
	Output *Schema
}

// SchemaStore resolves schemas by tool name. A tool with no known schema
// yields empty ToolSchemas and no error.
type SchemaStore interface {
	Lookup(tool string) (ToolSchemas, error)
}

// ScorecardEntry is one recorded session scorecard.
type ScorecardEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	SessionID        string    `json:"session_id"`
	CommitHash       string    `json:"commit_hash,omitempty"`
	TotalCalls       int       `json:"total_calls"`
	ValidatedCalls   int       `json:"validated_calls"`
	WarningsIssued   int       `json:"warnings_issued"`
	ErrorsPrevented  int       `json:"errors_prevented"`
	AutoFixesApplied int       `json:"auto_fixes_applied"`
	SafetyScore      float64   `json:"safety_score"`
}

// NewScorecardEntry summarizes stats for the history file.
func NewScorecardEntry(s *SessionStats, at time.Time, commit string) ScorecardEntry {
	return ScorecardEntry{
		Timestamp:        at,
		SessionID:        s.SessionID,
		CommitHash:       commit,
		TotalCalls:       s.TotalCalls,
		ValidatedCalls:   s.ValidatedCalls,
		WarningsIssued:   s.WarningsIssued,
		ErrorsPrevented:  s.ErrorsPrevented,
		AutoFixesApplied: s.AutoFixesApplied,
		SafetyScore:      s.SafetyScore(),
	}
}

// HistoryStore persists scorecard entries.
type HistoryStore interface {
	Append(projectPath string, entry ScorecardEntry) error
	Load(projectPath string) ([]ScorecardEntry, error)
}

// CommitResolver returns the current commit hash of a repository, or "" when
// the path is not inside one.
type CommitResolver interface {
	HeadCommit(path string) string
}
