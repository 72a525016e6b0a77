// Package store persists completed draws.
//
// Draws live in SQLite: one row of metadata per draw (UUIDv7 id,
// creation time, roster hash, participant count) plus one assignment row
// per giver. UNIQUE constraints on (draw_id, giver) and
// (draw_id, receiver) make a stored draw structurally a bijection; a
// write that would violate them fails and rolls back whole.
//
// Reads order deterministically (draws by created_at then id,
// assignments by giver) so repeated reads of the same database agree
// byte-for-byte.
//
// SECRECY: the store never logs assignment pairs. Listing draws exposes
// metadata only; reading pairs back is an explicit, separate call used
// by the send path.
package store
