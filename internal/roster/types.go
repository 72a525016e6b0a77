package roster

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/kringle/internal/match"
)

// Person is one roster entry.
type Person struct {
	FirstName string   `yaml:"first_name" json:"first_name"`
	LastName  string   `yaml:"last_name" json:"last_name"`
	Email     string   `yaml:"email" json:"email"`
	Allowed   []string `yaml:"allowed,omitempty" json:"allowed,omitempty"`

	// fullName is derived once at load time, NFC-normalized.
	fullName string
}

// FullName returns the display identifier "FirstName LastName".
func (p Person) FullName() string {
	if p.fullName != "" {
		return p.fullName
	}
	return normalizeName(p.FirstName + " " + p.LastName)
}

// normalizeName puts a name into NFC so composed and decomposed
// spellings of the same accented characters compare equal.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// Roster is a validated-or-validatable participant list. Declaration
// order from the source file is preserved.
type Roster struct {
	people []Person
	byName map[string]Person
}

// New builds a Roster from a person list, deriving normalized full
// names. It does not validate; callers run Validate before trusting the
// result. When two entries share a full name, ByName resolves to the
// first; Validate reports the collision.
func New(people []Person) *Roster {
	r := &Roster{
		people: make([]Person, len(people)),
		byName: make(map[string]Person, len(people)),
	}
	for i, p := range people {
		p.FirstName = normalizeName(p.FirstName)
		p.LastName = normalizeName(p.LastName)
		p.fullName = normalizeName(p.FirstName + " " + p.LastName)
		if len(p.Allowed) > 0 {
			allowed := make([]string, len(p.Allowed))
			for j, a := range p.Allowed {
				allowed[j] = normalizeName(a)
			}
			p.Allowed = allowed
		}
		r.people[i] = p
		if _, exists := r.byName[p.fullName]; !exists {
			r.byName[p.fullName] = p
		}
	}
	return r
}

// People returns the entries in declaration order.
func (r *Roster) People() []Person {
	return r.people
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	return len(r.people)
}

// ByName looks up a person by full name.
func (r *Roster) ByName(name string) (Person, bool) {
	p, ok := r.byName[normalizeName(name)]
	return p, ok
}

// ByEmail looks up a person by email address.
func (r *Roster) ByEmail(email string) (Person, bool) {
	for _, p := range r.people {
		if p.Email == email {
			return p, true
		}
	}
	return Person{}, false
}

// Participants converts the roster into the matching engine's input.
func (r *Roster) Participants() []match.Participant {
	out := make([]match.Participant, len(r.people))
	for i, p := range r.people {
		out[i] = match.Participant{Name: p.FullName(), Allowed: p.Allowed}
	}
	return out
}
