package roster

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// hashDomain gives the roster hash a versioned domain prefix so the
// algorithm can change without old hashes colliding with new ones.
const hashDomain = "kringle/roster/v1"

// Hash returns a content hash over the sorted full names. Stored draws
// carry it so a send run can tell when the roster changed since the
// draw was made. Emails and allow-lists deliberately do not contribute:
// they can change without invalidating an existing draw.
func (r *Roster) Hash() string {
	names := make([]string, len(r.people))
	for i, p := range r.people {
		names[i] = p.FullName()
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(hashDomain))
	h.Write([]byte{0x00})
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0x00})
	}
	return hex.EncodeToString(h.Sum(nil))
}
