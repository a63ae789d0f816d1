package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recording = `{"tool": "create_user", "arguments": {"user_id": 42, "email": "a@b.c"}}
{"tool": "create_user", "arguments": {"user_id": "42", "email": "a@b.c"}}

{"tool": "create_user", "arguments": {"email": "a@b.c"}, "response": {"ok": true}}
`

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calls.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(recording), 0644))
	return path
}

func TestSessionCommand_Scorecard(t *testing.T) {
	cfg := writeConfig(t, "")
	project := t.TempDir()

	out, err := run(t, "", "session", writeRecording(t), "--config", cfg, "--project", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Type Safety Report")
	assert.Contains(t, out, "Safety Score: 67%")
	assert.Contains(t, out, "Id Type Mismatch")

	_, err = os.Stat(filepath.Join(project, ".typeguard", "history", "scorecards.json"))
	assert.NoError(t, err)
}

func TestSessionCommand_JSONFromStdin(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, recording, "session", "-", "--config", cfg, "--project", t.TempDir(), "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_calls": 3`)
	assert.Contains(t, out, `"warnings_issued": 1`)
	assert.Contains(t, out, `"tool": "create_user"`)
}

func TestSessionCommand_Verbose(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "", "session", writeRecording(t), "--config", cfg, "--project", t.TempDir(), "--no-record", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Validating create_user arguments...")
}

func TestSessionCommand_CI(t *testing.T) {
	cfg := writeConfig(t, "")
	calls := writeRecording(t)

	_, err := run(t, "", "session", calls, "--config", cfg, "--no-record", "--ci", "--min", "50")
	assert.NoError(t, err)

	_, err = run(t, "", "session", calls, "--config", cfg, "--no-record", "--ci", "--min", "90")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the minimum 90.0")
}

func TestSessionCommand_History(t *testing.T) {
	cfg := writeConfig(t, "")
	project := t.TempDir()
	calls := writeRecording(t)

	_, err := run(t, "", "session", calls, "--config", cfg, "--project", project)
	require.NoError(t, err)

	out, err := run(t, "", "session", calls, "--config", cfg, "--project", project, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Safety Score History")
	assert.Contains(t, out, "3 calls")
}

func TestSessionCommand_NoRecord(t *testing.T) {
	cfg := writeConfig(t, "")
	project := t.TempDir()

	_, err := run(t, "", "session", writeRecording(t), "--config", cfg, "--project", project, "--no-record")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(project, ".typeguard", "history", "scorecards.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestSessionCommand_BadRecording(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, `{"arguments": {}}`, "session", "-", "--config", cfg, "--no-record")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = run(t, "", "session", "/nonexistent/calls.jsonl", "--config", cfg, "--no-record")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening /nonexistent/calls.jsonl")
}
