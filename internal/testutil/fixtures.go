// Package testutil provides file fixtures shared by command tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content into dir under name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// RosterYAML renders a roster file for the given full names. Emails are
// derived as first.last@example.com. Names must be "First Last".
func RosterYAML(names ...string) string {
	var b strings.Builder
	for _, name := range names {
		first, last, _ := strings.Cut(name, " ")
		fmt.Fprintf(&b, "- first_name: %s\n", first)
		fmt.Fprintf(&b, "  last_name: %s\n", last)
		fmt.Fprintf(&b, "  email: %s.%s@example.com\n",
			strings.ToLower(first), strings.ToLower(last))
	}
	return b.String()
}

// ConfigYAML is a minimal valid delivery config for tests; the body
// template names the giver and target so previews are recognizable.
const ConfigYAML = `smtp:
  host: smtp.example.com
  port: 587
  username: santa@example.com
  password_env_var: KRINGLE_SMTP_PASSWORD
email:
  from_email: santa@example.com
  subject: Your Secret Santa draw
  body: "Hi {{.GiverFirst}}, you drew {{.TargetFull}}."
`
