package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kringle/internal/testutil"
)

func TestValidate_ValidRoster(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))

	out, err := execute(t, "validate", "--roster", rosterPath)

	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestValidate_ValidRosterAndConfig(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))
	configPath := testutil.WriteFile(t, dir, "config.yaml", testutil.ConfigYAML)

	_, err := execute(t, "validate", "--roster", rosterPath, "--config", configPath)

	assert.NoError(t, err)
}

func TestValidate_ReportsAllRosterViolations(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml", `
- first_name: Jan
  last_name: Kowalski
  email: jan@example.com
  allowed: [Jan Kowalski, Ghost Person]
- first_name: Jan
  last_name: Kowalski
  email: jan@example.com
`)

	out, err := execute(t, "validate", "--roster", rosterPath)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E202", "duplicate name")
	assert.Contains(t, out, "E203", "unknown allowed recipient")
	assert.Contains(t, out, "E204", "self allowed")
	assert.Contains(t, out, "E205", "duplicate email")
}

func TestValidate_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml", `
- first_name: Jan
  last_name: Kowalski
`)

	out, err := execute(t, "validate", "--roster", rosterPath)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E200")
}

func TestValidate_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))
	configPath := testutil.WriteFile(t, dir, "config.yaml", "smtp: {}\nemail: {}\n")

	out, err := execute(t, "validate", "--roster", rosterPath, "--config", configPath)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E301", "missing host")
}

func TestValidate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))

	out, err := execute(t, "validate", "--format", "json", "--roster", rosterPath)

	require.NoError(t, err)
	assert.Contains(t, out, `"valid":true`)
}

func TestValidate_MissingFileIsCommandError(t *testing.T) {
	_, err := execute(t, "validate", "--roster", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
