package roster

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299).
const (
	ErrRosterSchema   = "E200" // document violates the roster schema
	ErrRosterSyntax   = "E201" // file is not valid YAML
	ErrDuplicateName  = "E202" // two entries share a full name
	ErrUnknownAllowed = "E203" // allow entry names a person not on the roster
	ErrSelfAllowed    = "E204" // allow entry names the person themselves
	ErrDuplicateEmail = "E205" // two entries share an email address
	ErrEmptyRoster    = "E206" // roster has no entries
)

// ValidationError is one roster rule violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// SchemaError wraps the schema violations for one file so Load can
// return them through a single error value.
type SchemaError struct {
	Path   string
	Errors []ValidationError
}

func (e SchemaError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

// Validate runs semantic checks over the roster and returns every
// violation found (it does not fail fast). A nil result means the roster
// is safe to hand to the matching engine.
func Validate(r *Roster) []ValidationError {
	var errs []ValidationError

	if r.Len() == 0 {
		return []ValidationError{{
			Field:   "roster",
			Message: "roster has no entries",
			Code:    ErrEmptyRoster,
		}}
	}

	// E202/E205: uniqueness of full names and emails
	names := make(map[string]int)
	emails := make(map[string]int)
	for i, p := range r.People() {
		name := p.FullName()
		if first, dup := names[name]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("people[%d]", i),
				Message: fmt.Sprintf("duplicate full name %q (first used by entry %d)", name, first),
				Code:    ErrDuplicateName,
			})
		} else {
			names[name] = i
		}
		if first, dup := emails[p.Email]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("people[%d].email", i),
				Message: fmt.Sprintf("duplicate email %q (first used by entry %d)", p.Email, first),
				Code:    ErrDuplicateEmail,
			})
		} else {
			emails[p.Email] = i
		}
	}

	// E203/E204: allow-list referential integrity
	for i, p := range r.People() {
		name := p.FullName()
		for j, target := range p.Allowed {
			field := fmt.Sprintf("people[%d].allowed[%d]", i, j)
			if target == name {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%q lists themselves as an allowed recipient", name),
					Code:    ErrSelfAllowed,
				})
				continue
			}
			if _, known := names[target]; !known {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%q lists unknown allowed recipient %q", name, target),
					Code:    ErrUnknownAllowed,
				})
			}
		}
	}

	return errs
}
