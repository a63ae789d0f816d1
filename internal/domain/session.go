package domain

import (
	"encoding/json"
	"time"
)

// SessionStats accumulates validation counters across many calls. The
// caller owns it and folds each report in; it is not safe for concurrent use.
type SessionStats struct {
	SessionID        string
	StartedAt        time.Time
	TotalCalls       int
	ValidatedCalls   int
	WarningsIssued   int
	ErrorsPrevented  int
	AutoFixesApplied int
	PatternsDetected map[Pattern]int
}

// NewSessionStats returns empty stats with every pattern counter seeded at zero.
func NewSessionStats(sessionID string, startedAt time.Time) *SessionStats {
	s := &SessionStats{
		SessionID:        sessionID,
		StartedAt:        startedAt,
		PatternsDetected: make(map[Pattern]int, len(AllPatterns)),
	}
	for _, p := range AllPatterns {
		s.PatternsDetected[p] = 0
	}
	return s
}

// SafetyScore returns the share of calls that needed no remediation, 0-100.
// A call with both warnings and errors is subtracted once for each.
func (s *SessionStats) SafetyScore() float64 {
	if s.TotalCalls == 0 {
		return 100
	}
	clean := s.TotalCalls - s.WarningsIssued - s.ErrorsPrevented
	return max(0, float64(clean)/float64(s.TotalCalls)*100)
}

// Clone returns a deep copy.
func (s *SessionStats) Clone() *SessionStats {
	c := *s
	c.PatternsDetected = make(map[Pattern]int, len(s.PatternsDetected))
	for p, n := range s.PatternsDetected {
		c.PatternsDetected[p] = n
	}
	return &c
}

// PatternCount pairs a pattern with its occurrence count.
type PatternCount struct {
	Pattern Pattern `json:"pattern"`
	Count   int     `json:"count"`
}

// PatternCounts returns the counters in reporting order.
func (s *SessionStats) PatternCounts() []PatternCount {
	out := make([]PatternCount, 0, len(AllPatterns))
	for _, p := range AllPatterns {
		out = append(out, PatternCount{Pattern: p, Count: s.PatternsDetected[p]})
	}
	return out
}

// Flatten returns the stats as a plain map, including the computed score.
func (s *SessionStats) Flatten() map[string]any {
	patterns := make(map[string]int, len(AllPatterns))
	for _, pc := range s.PatternCounts() {
		patterns[pc.Pattern.String()] = pc.Count
	}
	return map[string]any{
		"session_id":         s.SessionID,
		"total_calls":        s.TotalCalls,
		"validated_calls":    s.ValidatedCalls,
		"warnings_issued":    s.WarningsIssued,
		"errors_prevented":   s.ErrorsPrevented,
		"auto_fixes_applied": s.AutoFixesApplied,
		"patterns_detected":  patterns,
		"safety_score":       s.SafetyScore(),
	}
}

func (s *SessionStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Flatten())
}
