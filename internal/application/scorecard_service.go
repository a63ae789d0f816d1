package application

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/openkraft/typeguard/internal/domain"
)

// ScorecardService records session scorecards so safety can be tracked
// across runs.
type ScorecardService struct {
	history domain.HistoryStore
	git     domain.CommitResolver
	now     func() time.Time
}

// NewScorecardService creates a ScorecardService. git may be nil.
func NewScorecardService(history domain.HistoryStore, git domain.CommitResolver) *ScorecardService {
	return &ScorecardService{history: history, git: git, now: time.Now}
}

// Record appends a scorecard for stats to the history under projectPath.
func (s *ScorecardService) Record(projectPath string, stats *domain.SessionStats) (domain.ScorecardEntry, error) {
	commit := ""
	if s.git != nil {
		commit = s.git.HeadCommit(projectPath)
	}
	entry := domain.NewScorecardEntry(stats, s.now().UTC(), commit)
	if err := s.history.Append(projectPath, entry); err != nil {
		return domain.ScorecardEntry{}, errors.Wrap(err, "recording scorecard")
	}
	return entry, nil
}

// History returns the recorded scorecards, oldest first.
func (s *ScorecardService) History(projectPath string) ([]domain.ScorecardEntry, error) {
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading scorecard history")
	}
	return entries, nil
}

// CheckMinimum fails when the safety score is below minimum.
func CheckMinimum(stats *domain.SessionStats, minimum float64) error {
	if score := stats.SafetyScore(); score < minimum {
		return errors.Newf("safety score %.1f is below the minimum %.1f", score, minimum)
	}
	return nil
}
