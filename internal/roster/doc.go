// Package roster loads and validates the participant list.
//
// A roster file is a YAML list of people, each with a first name, last
// name, email address, and an optional allow-list of full names they may
// draw:
//
//	- first_name: Jan
//	  last_name: Kowalski
//	  email: jan.kowalski@example.com
//	  allowed:
//	    - Anna Nowak
//
// Loading is two-phase. The decoded document is first checked against an
// embedded CUE schema (structure, required fields, email shape), then
// semantic rules run over the whole list: full names unique, allow
// entries resolve to known people, nobody lists themselves. Semantic
// validation collects every violation instead of stopping at the first.
//
// Full names are NFC-normalized on load so two spellings of the same
// accented name compare equal everywhere downstream (allow-lists, stored
// draws, email selection).
//
// The matching engine trusts the roster: it assumes names are unique and
// allow entries are neither dangling nor self-referential. Validate
// before handing a roster to match.Find.
package roster
