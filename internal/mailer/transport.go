package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/roach88/kringle/internal/config"
)

// Message is one rendered email, ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// bytes renders the RFC 5322 wire form.
func (m Message) bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

// Transport delivers rendered messages. The SMTP implementation is the
// production path; tests and dry runs inject their own.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPTransport delivers over SMTP with STARTTLS and optional AUTH.
//
// No third-party mail client is involved; the message volume is one
// email per participant, so net/smtp is enough. Each Send dials a fresh
// connection, which keeps the transport stateless and lets a failed
// send leave no half-open session behind.
type SMTPTransport struct {
	cfg      config.SMTP
	password string
}

// NewSMTPTransport builds a transport from resolved settings. password
// may be empty when the server requires no AUTH.
func NewSMTPTransport(cfg config.SMTP, password string) *SMTPTransport {
	return &SMTPTransport{cfg: cfg, password: password}
}

// Send delivers one message. The context bounds the dial; SMTP command
// exchange after connect is bounded by server timeouts.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake with %s: %w", addr, err)
	}
	defer client.Close()

	if t.cfg.TLS() {
		if err := client.StartTLS(&tls.Config{ServerName: t.cfg.Host}); err != nil {
			return fmt.Errorf("starttls with %s: %w", addr, err)
		}
	}

	if t.cfg.Username != "" {
		auth := smtp.PlainAuth("", t.cfg.Username, t.password, t.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth as %s: %w", t.cfg.Username, err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("mail from %s: %w", msg.From, err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to %s: %w", msg.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg.bytes()); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}
