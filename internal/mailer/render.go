package mailer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/roach88/kringle/internal/roster"
)

// TemplateData is the render context for the body template. Field names
// are the template's public contract; renaming one breaks user configs.
type TemplateData struct {
	GiverFirst  string
	GiverLast   string
	GiverFull   string
	TargetFirst string
	TargetLast  string
	TargetFull  string
	TargetEmail string
}

// templateData builds the render context for one assignment pair.
func templateData(giver, target roster.Person) TemplateData {
	return TemplateData{
		GiverFirst:  giver.FirstName,
		GiverLast:   giver.LastName,
		GiverFull:   giver.FullName(),
		TargetFirst: target.FirstName,
		TargetLast:  target.LastName,
		TargetFull:  target.FullName(),
		TargetEmail: target.Email,
	}
}

// RenderBody executes the body template for one giver/target pair.
func RenderBody(body string, giver, target roster.Person) (string, error) {
	tmpl, err := template.New("body").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse body template: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, templateData(giver, target)); err != nil {
		return "", fmt.Errorf("render body for %s: %w", giver.FullName(), err)
	}
	return out.String(), nil
}
