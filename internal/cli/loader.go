package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/kringle/internal/config"
	"github.com/roach88/kringle/internal/roster"
)

// loadValidatedRoster loads a roster file and runs both schema and
// semantic validation, writing every violation through the formatter.
// The returned error already carries the right exit code.
func loadValidatedRoster(path string, formatter *OutputFormatter) (*roster.Roster, error) {
	r, err := roster.Load(path)
	if err != nil {
		var se roster.SchemaError
		if errors.As(err, &se) {
			_ = formatter.Error(ErrCodeValidation,
				fmt.Sprintf("roster %s failed schema validation", path), se.Errors)
			return nil, NewExitError(ExitFailure, "roster validation failed")
		}
		return nil, WrapExitError(ExitCommandError, "failed to load roster", err)
	}

	if verrs := roster.Validate(r); len(verrs) > 0 {
		_ = formatter.Error(ErrCodeValidation,
			fmt.Sprintf("roster %s failed validation", path), verrs)
		return nil, NewExitError(ExitFailure, "roster validation failed")
	}

	return r, nil
}

// loadValidatedConfig does the same for the delivery config.
func loadValidatedConfig(path string, formatter *OutputFormatter) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if verrs := config.Validate(cfg); len(verrs) > 0 {
		_ = formatter.Error(ErrCodeValidation,
			fmt.Sprintf("config %s failed validation", path), verrs)
		return nil, NewExitError(ExitFailure, "config validation failed")
	}

	return cfg, nil
}
