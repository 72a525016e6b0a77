package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/kringle/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testAssignments() match.Assignment {
	return match.Assignment{
		"Anna Nowak":       "Jan Kowalski",
		"Jan Kowalski":     "Piotr Wisniewski",
		"Piotr Wisniewski": "Anna Nowak",
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestSaveDraw_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := testAssignments()

	draw, err := s.SaveDraw(ctx, want, "hash-1")
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	if draw.ID == "" {
		t.Fatal("SaveDraw() returned empty id")
	}
	if draw.Participants != len(want) {
		t.Errorf("Participants = %d, want %d", draw.Participants, len(want))
	}

	got, assignments, err := s.ReadDraw(ctx, draw.ID)
	if err != nil {
		t.Fatalf("ReadDraw() failed: %v", err)
	}
	if got.RosterHash != "hash-1" {
		t.Errorf("RosterHash = %q, want %q", got.RosterHash, "hash-1")
	}
	if len(assignments) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(assignments), len(want))
	}
	for giver, receiver := range want {
		if assignments[giver] != receiver {
			t.Errorf("assignments[%q] = %q, want %q", giver, assignments[giver], receiver)
		}
	}
}

func TestSaveDraw_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	draw, err := s1.SaveDraw(ctx, testAssignments(), "hash-1")
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	_, assignments, err := s2.ReadDraw(ctx, draw.ID)
	if err != nil {
		t.Fatalf("ReadDraw() after reopen failed: %v", err)
	}
	if len(assignments) != 3 {
		t.Errorf("got %d assignments after reopen, want 3", len(assignments))
	}
}

func TestReadDraw_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.ReadDraw(context.Background(), "no-such-id")
	if err != ErrNotFound {
		t.Errorf("ReadDraw() error = %v, want ErrNotFound", err)
	}
}

func TestLatestDraw_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.LatestDraw(context.Background())
	if err != ErrNotFound {
		t.Errorf("LatestDraw() error = %v, want ErrNotFound", err)
	}
}

func TestLatestDraw_PicksNewest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveDraw(ctx, match.Assignment{"A": "B", "B": "A"}, "hash-1")
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	second, err := s.SaveDraw(ctx, testAssignments(), "hash-2")
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}

	latest, assignments, err := s.LatestDraw(ctx)
	if err != nil {
		t.Fatalf("LatestDraw() failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("LatestDraw() id = %s, want %s (not %s)", latest.ID, second.ID, first.ID)
	}
	if len(assignments) != 3 {
		t.Errorf("got %d assignments, want 3", len(assignments))
	}
}

func TestListDraws_MetadataOnlyNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ids := make([]string, 3)
	for i := range ids {
		d, err := s.SaveDraw(ctx, match.Assignment{"A": "B", "B": "A"}, "h")
		if err != nil {
			t.Fatalf("SaveDraw() failed: %v", err)
		}
		ids[i] = d.ID
	}

	draws, err := s.ListDraws(ctx)
	if err != nil {
		t.Fatalf("ListDraws() failed: %v", err)
	}
	if len(draws) != 3 {
		t.Fatalf("got %d draws, want 3", len(draws))
	}
	for i := range draws {
		if draws[i].ID != ids[len(ids)-1-i] {
			t.Errorf("draws[%d].ID = %s, want %s", i, draws[i].ID, ids[len(ids)-1-i])
		}
	}
}

func TestExportJSON_InterchangeShape(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, match.Assignment{"A": "B", "B": "A"}); err != nil {
		t.Fatalf("ExportJSON() failed: %v", err)
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["assignments"]["A"] != "B" {
		t.Errorf("assignments[A] = %q, want B", decoded["assignments"]["A"])
	}
}

func TestReadResultsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	var buf bytes.Buffer
	if err := ExportJSON(&buf, testAssignments()); err != nil {
		t.Fatalf("ExportJSON() failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadResultsFile(path)
	if err != nil {
		t.Fatalf("ReadResultsFile() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d assignments, want 3", len(got))
	}
}

func TestReadResultsFile_MissingAssignmentsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(`{"other": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadResultsFile(path); err == nil {
		t.Error("expected error for missing assignments key")
	}
}
