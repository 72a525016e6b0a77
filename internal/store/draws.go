package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/kringle/internal/match"
)

// Draw is the metadata of one stored matching run. Assignment pairs are
// kept out of this struct on purpose: listings and logs handle Draw
// values freely, pairs only move through explicit reads.
type Draw struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	RosterHash   string    `json:"roster_hash"`
	Participants int       `json:"participants"`
}

// SaveDraw writes a draw and its assignments in one transaction.
// The draw gets a fresh UUIDv7 id, so ids sort by creation time.
func (s *Store) SaveDraw(ctx context.Context, assignments match.Assignment, rosterHash string) (Draw, error) {
	draw := Draw{
		ID:           uuid.Must(uuid.NewV7()).String(),
		CreatedAt:    time.Now().UTC(),
		RosterHash:   rosterHash,
		Participants: len(assignments),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Draw{}, fmt.Errorf("save draw: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO draws (id, created_at, roster_hash, participants)
		VALUES (?, ?, ?, ?)
	`, draw.ID, draw.CreatedAt.Format(time.RFC3339Nano), draw.RosterHash, draw.Participants)
	if err != nil {
		return Draw{}, fmt.Errorf("save draw: %w", err)
	}

	// Insert in sorted giver order so the write path is deterministic.
	givers := make([]string, 0, len(assignments))
	for giver := range assignments {
		givers = append(givers, giver)
	}
	sort.Strings(givers)

	for _, giver := range givers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO assignments (draw_id, giver, receiver)
			VALUES (?, ?, ?)
		`, draw.ID, giver, assignments[giver])
		if err != nil {
			return Draw{}, fmt.Errorf("save assignment for draw %s: %w", draw.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Draw{}, fmt.Errorf("save draw: %w", err)
	}

	return draw, nil
}

// ReadDraw returns one draw and its assignments.
// Returns ErrNotFound if the id does not exist.
func (s *Store) ReadDraw(ctx context.Context, id string) (Draw, match.Assignment, error) {
	draw, err := s.scanDraw(s.db.QueryRowContext(ctx, `
		SELECT id, created_at, roster_hash, participants
		FROM draws
		WHERE id = ?
	`, id))
	if err != nil {
		return Draw{}, nil, err
	}

	assignments, err := s.readAssignments(ctx, draw.ID)
	if err != nil {
		return Draw{}, nil, err
	}
	return draw, assignments, nil
}

// LatestDraw returns the most recent draw and its assignments.
// Returns ErrNotFound when the store holds no draws yet.
func (s *Store) LatestDraw(ctx context.Context) (Draw, match.Assignment, error) {
	draw, err := s.scanDraw(s.db.QueryRowContext(ctx, `
		SELECT id, created_at, roster_hash, participants
		FROM draws
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`))
	if err != nil {
		return Draw{}, nil, err
	}

	assignments, err := s.readAssignments(ctx, draw.ID)
	if err != nil {
		return Draw{}, nil, err
	}
	return draw, assignments, nil
}

// ListDraws returns the metadata of every stored draw, newest first.
// Assignment pairs are never included.
func (s *Store) ListDraws(ctx context.Context) ([]Draw, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, roster_hash, participants
		FROM draws
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	defer rows.Close()

	var draws []Draw
	for rows.Next() {
		var d Draw
		var created string
		if err := rows.Scan(&d.ID, &created, &d.RosterHash, &d.Participants); err != nil {
			return nil, fmt.Errorf("list draws: %w", err)
		}
		d.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("list draws: bad created_at for %s: %w", d.ID, err)
		}
		draws = append(draws, d)
	}
	return draws, rows.Err()
}

func (s *Store) scanDraw(row *sql.Row) (Draw, error) {
	var d Draw
	var created string
	err := row.Scan(&d.ID, &created, &d.RosterHash, &d.Participants)
	if err == sql.ErrNoRows {
		return Draw{}, ErrNotFound
	}
	if err != nil {
		return Draw{}, fmt.Errorf("read draw: %w", err)
	}
	d.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Draw{}, fmt.Errorf("read draw: bad created_at for %s: %w", d.ID, err)
	}
	return d, nil
}

// readAssignments reads the pairs for one draw, ordered by giver.
func (s *Store) readAssignments(ctx context.Context, drawID string) (match.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT giver, receiver
		FROM assignments
		WHERE draw_id = ?
		ORDER BY giver ASC
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("read assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(match.Assignment)
	for rows.Next() {
		var giver, receiver string
		if err := rows.Scan(&giver, &receiver); err != nil {
			return nil, fmt.Errorf("read assignments: %w", err)
		}
		assignments[giver] = receiver
	}
	return assignments, rows.Err()
}
