// Package mailer renders and delivers the "you drew X" emails.
//
// Each giver receives one message telling them who they drew. Rendering
// uses Go text templates over a fixed set of fields (giver and target
// names, target email). Delivery goes through the Transport interface:
// the real implementation speaks SMTP with STARTTLS, tests and dry runs
// substitute one that records or previews instead of sending.
//
// A dry run renders every message to a writer and sends nothing, so the
// operator can check wording without leaking the draw over the wire.
// Nothing in this package logs assignment pairs.
package mailer
