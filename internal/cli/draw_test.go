package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kringle/internal/store"
	"github.com/roach88/kringle/internal/testutil"
)

// execute runs the CLI with args and captures combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestDraw_StoresMatchingWithoutRevealingIt(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak", "Piotr Wisniewski", "Maria Lewandowska"))
	dbPath := filepath.Join(dir, "santa.db")

	out, err := execute(t, "draw", "--roster", rosterPath, "--db", dbPath, "--seed", "42")

	require.NoError(t, err)
	assert.Contains(t, out, "stored")

	// The operator-facing output must not leak who drew whom: no roster
	// name may appear in it.
	for _, name := range []string{"Jan", "Anna", "Piotr", "Maria"} {
		assert.NotContains(t, out, name)
	}

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, assignments, err := st.LatestDraw(context.Background())
	require.NoError(t, err)
	assert.Len(t, assignments, 4)
}

func TestDraw_InfeasibleRosterFailsWithExitFailure(t *testing.T) {
	dir := t.TempDir()
	// C can only draw A, but A and B are locked onto each other.
	rosterPath := testutil.WriteFile(t, dir, "people.yaml", `
- first_name: Jan
  last_name: Kowalski
  email: jan@example.com
  allowed: [Anna Nowak]
- first_name: Anna
  last_name: Nowak
  email: anna@example.com
  allowed: [Jan Kowalski]
- first_name: Piotr
  last_name: Wisniewski
  email: piotr@example.com
  allowed: [Jan Kowalski]
`)

	out, err := execute(t, "draw", "--roster", rosterPath, "--db", filepath.Join(dir, "santa.db"))

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "no perfect matching")
}

func TestDraw_InvalidRosterFailsValidation(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml", `
- first_name: Jan
  last_name: Kowalski
  email: jan@example.com
  allowed: [Ghost Person]
- first_name: Anna
  last_name: Nowak
  email: anna@example.com
`)

	out, err := execute(t, "draw", "--roster", rosterPath, "--db", filepath.Join(dir, "santa.db"))

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "validation")
}

func TestDraw_MissingRosterIsCommandError(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "draw", "--roster", filepath.Join(dir, "nope.yaml"), "--db", filepath.Join(dir, "santa.db"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDraw_SeededExportIsReproducible(t *testing.T) {
	roster := testutil.RosterYAML("Jan Kowalski", "Anna Nowak", "Piotr Wisniewski", "Maria Lewandowska")

	exports := make([][]byte, 2)
	for i := range exports {
		dir := t.TempDir()
		rosterPath := testutil.WriteFile(t, dir, "people.yaml", roster)
		exportPath := filepath.Join(dir, "results.json")

		_, err := execute(t, "draw",
			"--roster", rosterPath,
			"--db", filepath.Join(dir, "santa.db"),
			"--seed", "7",
			"--export", exportPath)
		require.NoError(t, err)

		data, err := os.ReadFile(exportPath)
		require.NoError(t, err)
		exports[i] = data
	}

	assert.Equal(t, string(exports[0]), string(exports[1]))
}

func TestDraw_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	rosterPath := testutil.WriteFile(t, dir, "people.yaml",
		testutil.RosterYAML("Jan Kowalski", "Anna Nowak"))

	out, err := execute(t, "draw", "--format", "json",
		"--roster", rosterPath, "--db", filepath.Join(dir, "santa.db"))

	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"draw_id"`)
	assert.NotContains(t, out, "Jan")
}

func TestDraw_RejectsBadFormat(t *testing.T) {
	_, err := execute(t, "draw", "--format", "xml", "--roster", "x", "--db", "y")
	assert.Error(t, err)
}
