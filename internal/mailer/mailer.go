package mailer

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/roach88/kringle/internal/config"
	"github.com/roach88/kringle/internal/match"
	"github.com/roach88/kringle/internal/roster"
)

// Mailer renders and delivers draw notifications.
type Mailer struct {
	cfg       *config.Config
	transport Transport
}

// New builds a Mailer. transport may be nil for pure dry runs.
func New(cfg *config.Config, transport Transport) *Mailer {
	return &Mailer{cfg: cfg, transport: transport}
}

// SendOptions controls one delivery run.
type SendOptions struct {
	// DryRun renders every message to Preview and sends nothing.
	DryRun bool

	// Only restricts delivery to a single giver, identified by full name
	// or email address. Empty means everyone.
	Only string

	// Preview receives dry-run output. Required when DryRun is set.
	Preview io.Writer
}

// Verify cross-checks assignments against the roster: every giver and
// every receiver must be a known person. Run before sending whenever
// the draw was stored earlier than the roster was last edited.
func Verify(assignments match.Assignment, r *roster.Roster) error {
	for giver, receiver := range assignments {
		if _, ok := r.ByName(giver); !ok {
			return fmt.Errorf("giver %q from the draw is missing from the roster", giver)
		}
		if _, ok := r.ByName(receiver); !ok {
			return fmt.Errorf("recipient %q (assigned to %q) is missing from the roster", receiver, giver)
		}
	}
	return nil
}

// SendAll delivers one message per selected giver, in sorted giver
// order. It stops at the first delivery failure and returns how many
// messages went out before it. Dry runs render previews instead.
func (m *Mailer) SendAll(ctx context.Context, assignments match.Assignment, r *roster.Roster, opts SendOptions) (int, error) {
	if err := Verify(assignments, r); err != nil {
		return 0, err
	}

	selected, err := selectGivers(assignments, r, opts.Only)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, giverName := range selected {
		giver, _ := r.ByName(giverName)
		target, _ := r.ByName(assignments[giverName])

		body, err := RenderBody(m.cfg.Email.Body, giver, target)
		if err != nil {
			return sent, err
		}

		msg := Message{
			From:    m.cfg.Email.FromEmail,
			To:      giver.Email,
			Subject: m.cfg.Email.Subject,
			Body:    body,
		}

		if opts.DryRun {
			preview(opts.Preview, msg)
			sent++
			continue
		}

		if m.transport == nil {
			return sent, fmt.Errorf("no transport configured for real delivery")
		}
		if err := m.transport.Send(ctx, msg); err != nil {
			return sent, fmt.Errorf("send to %s: %w", msg.To, err)
		}
		sent++
	}

	return sent, nil
}

// selectGivers resolves the Only filter to a sorted list of givers.
func selectGivers(assignments match.Assignment, r *roster.Roster, only string) ([]string, error) {
	if only == "" {
		givers := make([]string, 0, len(assignments))
		for giver := range assignments {
			givers = append(givers, giver)
		}
		sort.Strings(givers)
		return givers, nil
	}

	p, ok := r.ByName(only)
	if !ok {
		p, ok = r.ByEmail(only)
	}
	if !ok {
		return nil, fmt.Errorf("no person with full name or email %q", only)
	}
	if _, isGiver := assignments[p.FullName()]; !isGiver {
		return nil, fmt.Errorf("%q does not appear as a giver in this draw", p.FullName())
	}
	return []string{p.FullName()}, nil
}

// preview writes a dry-run rendering of one message. The format is part
// of the golden test surface.
func preview(w io.Writer, msg Message) {
	fmt.Fprintln(w, "-----------------------------")
	fmt.Fprintf(w, "TO: %s\n", msg.To)
	fmt.Fprintf(w, "SUBJECT: %s\n", msg.Subject)
	fmt.Fprintln(w, "BODY:")
	fmt.Fprintln(w, msg.Body)
}
