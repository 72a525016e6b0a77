package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kringle/internal/testutil"
)

func TestHistory_EmptyDatabase(t *testing.T) {
	out, err := execute(t, "history", "--db", filepath.Join(t.TempDir(), "santa.db"))

	require.NoError(t, err)
	assert.Contains(t, out, "No draws stored yet")
}

func TestHistory_ListsDrawsWithoutAssignments(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))
	dbPath := filepath.Join(dir, "santa.db")

	for i := 0; i < 2; i++ {
		_, err := execute(t, "draw", "--roster", rosterPath, "--db", dbPath)
		require.NoError(t, err)
	}

	out, err := execute(t, "history", "--db", dbPath)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "2 participants")
		assert.NotContains(t, line, "Jan")
		assert.NotContains(t, line, "Anna")
	}
}

func TestHistory_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))
	dbPath := filepath.Join(dir, "santa.db")

	_, err := execute(t, "draw", "--roster", rosterPath, "--db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "history", "--format", "json", "--db", dbPath)

	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"roster_hash"`)
}
