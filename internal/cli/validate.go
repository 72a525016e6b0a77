package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/kringle/internal/config"
	"github.com/roach88/kringle/internal/roster"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Roster string
	Config string
}

// ValidationResult holds validation results across both files.
type ValidationResult struct {
	Valid        bool                     `json:"valid"`
	RosterErrors []roster.ValidationError `json:"roster_errors,omitempty"`
	ConfigErrors []config.ValidationError `json:"config_errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate roster and config files",
		Long: `Validate a roster file (and optionally a delivery config) without drawing.

Checks the roster against its schema, then runs semantic rules: unique
full names and emails, allow-lists referencing only known people, nobody
listing themselves. All violations are reported, not just the first.

Examples:
  kringle validate --roster people.yaml
  kringle validate --roster people.yaml --config config.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Roster, "roster", "", "path to the roster YAML file (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to the delivery config to validate too")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := ValidationResult{Valid: true}

	r, err := roster.Load(opts.Roster)
	if err != nil {
		var se roster.SchemaError
		if !errors.As(err, &se) {
			return WrapExitError(ExitCommandError, "failed to load roster", err)
		}
		result.RosterErrors = se.Errors
	} else {
		result.RosterErrors = roster.Validate(r)
	}

	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		result.ConfigErrors = config.Validate(cfg)
	}

	result.Valid = len(result.RosterErrors) == 0 && len(result.ConfigErrors) == 0

	if opts.Format == "json" {
		var err error
		if result.Valid {
			err = formatter.Success(result)
		} else {
			err = formatter.Error(ErrCodeValidation, "validation failed", result)
		}
		if err != nil {
			return err
		}
	} else {
		printValidationText(formatter, opts, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func printValidationText(formatter *OutputFormatter, opts *ValidateOptions, result ValidationResult) {
	if result.Valid {
		fmt.Fprintf(formatter.Writer, "%s is valid", opts.Roster)
		if opts.Config != "" {
			fmt.Fprintf(formatter.Writer, ", %s is valid", opts.Config)
		}
		fmt.Fprintln(formatter.Writer)
		return
	}

	for _, e := range result.RosterErrors {
		fmt.Fprintf(formatter.Writer, "%s: %s\n", opts.Roster, e.Error())
	}
	for _, e := range result.ConfigErrors {
		fmt.Fprintf(formatter.Writer, "%s: %s\n", opts.Config, e.Error())
	}
}
