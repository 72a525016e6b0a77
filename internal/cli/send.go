package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/kringle/internal/mailer"
	"github.com/roach88/kringle/internal/match"
	"github.com/roach88/kringle/internal/store"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	Roster   string
	Config   string
	Database string
	DrawID   string
	Results  string
	Only     string
	DryRun   bool
}

// SendResult is the success payload.
type SendResult struct {
	Sent   int    `json:"sent"`
	DrawID string `json:"draw_id,omitempty"`
	DryRun bool   `json:"dry_run"`
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email each giver their draw",
		Long: `Send each giver an email revealing who they drew.

The draw comes from the database (latest by default, or --draw for a
specific one) or from a results JSON file via --results. The roster is
cross-checked first so a stale draw against an edited roster fails
loudly instead of emailing the wrong people.

Use --dry-run to preview every message without sending anything, and
--only to deliver to a single person (full name or email), e.g. after
one email bounced.

Examples:
  kringle send --roster people.yaml --config config.yaml --db santa.db --dry-run
  kringle send --roster people.yaml --config config.yaml --db santa.db
  kringle send --roster people.yaml --config config.yaml --db santa.db --only jan.kowalski@example.com`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Roster, "roster", "", "path to the roster YAML file (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to the delivery config (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite database")
	cmd.Flags().StringVar(&opts.DrawID, "draw", "", "draw id to send (default: latest)")
	cmd.Flags().StringVar(&opts.Results, "results", "", "read the draw from a results JSON file instead of the database")
	cmd.Flags().StringVar(&opts.Only, "only", "", "send only to one person (full name or email)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "preview messages without sending")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runSend(opts *SendOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Results == "" && opts.Database == "" {
		return NewExitError(ExitCommandError, "either --db or --results is required")
	}

	r, err := loadValidatedRoster(opts.Roster, formatter)
	if err != nil {
		return err
	}

	cfg, err := loadValidatedConfig(opts.Config, formatter)
	if err != nil {
		return err
	}

	assignments, drawID, err := loadAssignments(opts, cmd)
	if err != nil {
		return err
	}
	slog.Info("draw loaded", "draw_id", drawID, "givers", len(assignments))

	var transport mailer.Transport
	if !opts.DryRun {
		password, err := cfg.SMTP.ResolvePassword()
		if err != nil && cfg.SMTP.Username != "" {
			return WrapExitError(ExitCommandError, "cannot send", err)
		}
		transport = mailer.NewSMTPTransport(cfg.SMTP, password)
	}

	m := mailer.New(cfg, transport)
	sent, err := m.SendAll(cmd.Context(), assignments, r, mailer.SendOptions{
		DryRun:  opts.DryRun,
		Only:    opts.Only,
		Preview: cmd.OutOrStdout(),
	})
	if err != nil {
		_ = formatter.Error(ErrCodeSend,
			fmt.Sprintf("delivery stopped after %d message(s): %v", sent, err), nil)
		return NewExitError(ExitFailure, "send failed")
	}

	result := SendResult{Sent: sent, DrawID: drawID, DryRun: opts.DryRun}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	if opts.DryRun {
		fmt.Fprintf(formatter.Writer, "\nDry run finished - %d message(s) previewed, nothing was sent.\n", sent)
	} else {
		fmt.Fprintf(formatter.Writer, "%d message(s) sent.\n", sent)
	}
	return nil
}

// loadAssignments reads the draw from the configured source. The
// database wins over --results only in the sense that the flags are
// mutually exclusive; passing both is an error.
func loadAssignments(opts *SendOptions, cmd *cobra.Command) (match.Assignment, string, error) {
	if opts.Results != "" {
		if opts.Database != "" {
			return nil, "", NewExitError(ExitCommandError, "--db and --results are mutually exclusive")
		}
		assignments, err := store.ReadResultsFile(opts.Results)
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "failed to read results file", err)
		}
		return assignments, "", nil
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var draw store.Draw
	var assignments match.Assignment
	if opts.DrawID != "" {
		draw, assignments, err = st.ReadDraw(cmd.Context(), opts.DrawID)
	} else {
		draw, assignments, err = st.LatestDraw(cmd.Context())
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", NewExitError(ExitCommandError, "no draw found; run \"kringle draw\" first")
	}
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "failed to read draw", err)
	}
	return assignments, draw.ID, nil
}
