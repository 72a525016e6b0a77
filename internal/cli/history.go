package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/kringle/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored draws",
		Long: `List the draws stored in the database, newest first.

Only metadata is shown: id, creation time, roster hash, participant
count. Assignment pairs are never listed.

Example:
  kringle history --db santa.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	draws, err := st.ListDraws(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list draws", err)
	}

	if opts.Format == "json" {
		return formatter.Success(draws)
	}

	if len(draws) == 0 {
		fmt.Fprintln(formatter.Writer, "No draws stored yet.")
		return nil
	}
	for _, d := range draws {
		fmt.Fprintf(formatter.Writer, "%s  %s  %d participants  roster %.12s\n",
			d.ID, d.CreatedAt.Format(time.RFC3339), d.Participants, d.RosterHash)
	}
	return nil
}
