package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/kringle/internal/match"
	"github.com/roach88/kringle/internal/store"
)

// DrawOptions holds flags for the draw command.
type DrawOptions struct {
	*RootOptions
	Roster      string
	Database    string
	Attempts    int
	Seed        int64
	SeedSet     bool
	StopOnFirst bool
	Workers     int
	Export      string
}

// DrawResult is the success payload. Assignment pairs are deliberately
// absent: the operator only ever sees metadata.
type DrawResult struct {
	DrawID       string `json:"draw_id"`
	Participants int    `json:"participants"`
	RosterHash   string `json:"roster_hash"`
}

// NewDrawCommand creates the draw command.
func NewDrawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DrawOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Generate and store a Secret Santa matching",
		Long: `Generate a constrained Secret Santa matching for a roster and store it.

The matching honors per-person allow-lists, assigns nobody to themselves,
and covers everyone exactly once as giver and receiver. The result goes
into the SQLite database; it is never printed.

Examples:
  kringle draw --roster people.yaml --db santa.db
  kringle draw --roster people.yaml --db santa.db --seed 42 --attempts 100
  kringle draw --roster people.yaml --db santa.db --export results.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SeedSet = cmd.Flags().Changed("seed")
			return runDraw(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Roster, "roster", "", "path to the roster YAML file (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite database (required)")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", match.DefaultMaxAttempts, "solver attempt budget")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for a reproducible draw")
	cmd.Flags().BoolVar(&opts.StopOnFirst, "stop-on-first", false, "stop at the first valid matching")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent solver attempts (0 = sequential)")
	cmd.Flags().StringVar(&opts.Export, "export", "", "also write results to a JSON file")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDraw(opts *DrawOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	r, err := loadValidatedRoster(opts.Roster, formatter)
	if err != nil {
		return err
	}
	slog.Info("roster loaded", "path", opts.Roster, "participants", r.Len())

	cfg := match.Config{
		MaxAttempts: opts.Attempts,
		StopOnFirst: opts.StopOnFirst,
		Workers:     opts.Workers,
	}
	if opts.SeedSet {
		cfg.Seed = &opts.Seed
	}

	slog.Info("searching for matching", "attempts", cfg.MaxAttempts, "workers", cfg.Workers)
	assignments, err := match.Find(r.Participants(), cfg)
	if err != nil {
		if match.IsNoMatching(err) {
			_ = formatter.Error(ErrCodeNoMatching, err.Error(), nil)
			return NewExitError(ExitFailure, "no matching found")
		}
		return WrapExitError(ExitCommandError, "matching failed", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	draw, err := st.SaveDraw(cmd.Context(), assignments, r.Hash())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to store draw", err)
	}
	slog.Info("draw stored", "draw_id", draw.ID, "participants", draw.Participants)

	if opts.Export != "" {
		if err := exportResults(opts.Export, assignments); err != nil {
			return WrapExitError(ExitCommandError, "failed to export results", err)
		}
		slog.Info("results exported", "path", opts.Export)
	}

	result := DrawResult{
		DrawID:       draw.ID,
		Participants: draw.Participants,
		RosterHash:   draw.RosterHash,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Draw %s stored (%d participants).\n", result.DrawID, result.Participants)
	fmt.Fprintln(formatter.Writer, "The assignments stay secret; use \"kringle send\" to deliver them.")
	return nil
}

// exportResults writes the interchange JSON file with owner-only
// permissions; it contains the full draw.
func exportResults(path string, assignments match.Assignment) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return store.ExportJSON(f, assignments)
}
