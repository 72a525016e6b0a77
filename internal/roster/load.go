package roster

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Load reads a roster file, checks it against the embedded CUE schema,
// and decodes it. Schema violations are returned as ValidationErrors
// (one per violation); I/O and decode problems as plain errors.
//
// Load does not run semantic validation; call Validate on the result.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	if errs := checkSchema(path, data); len(errs) > 0 {
		return nil, SchemaError{Path: path, Errors: errs}
	}

	var people []Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", path, err)
	}

	return New(people), nil
}

// checkSchema unifies the roster document with the embedded schema and
// collects every violation CUE reports.
func checkSchema(path string, data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// Embedded schema is part of the binary; failing to compile it is
		// a programming error, not user input.
		panic(fmt.Sprintf("roster: embedded schema invalid: %v", err))
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return []ValidationError{{
			Field:   "roster",
			Message: fmt.Sprintf("not valid YAML: %v", err),
			Code:    ErrRosterSyntax,
		}}
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return cueViolations(err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueViolations(err)
	}

	return nil
}

// cueViolations flattens a CUE error into one ValidationError per leaf.
func cueViolations(err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		out = append(out, ValidationError{
			Field:   field,
			Message: e.Error(),
			Code:    ErrRosterSchema,
		})
	}
	return out
}
