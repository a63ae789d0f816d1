package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/openkraft/typeguard/internal/domain"
)

const historyFile = ".typeguard/history/scorecards.json"

// FileHistory implements domain.HistoryStore using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Append(projectPath string, entry domain.ScorecardEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return errors.Wrap(err, "creating history directory")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding history")
	}

	return errors.Wrapf(os.WriteFile(fp, data, 0644), "writing %s", historyFile)
}

func (h *FileHistory) Load(projectPath string) ([]domain.ScorecardEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", historyFile)
	}

	var entries []domain.ScorecardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "parsing %s", historyFile),
			"delete the file to start a fresh history")
	}

	return entries, nil
}
