// Package mailer delivers personalized outreach messages over a single
// authenticated SMTP-over-TLS session.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/recruiterradar/outreach/internal/pattern"
	"github.com/recruiterradar/outreach/internal/pipeline"
)

// Defaults for the mail-submission endpoint (implicit TLS).
const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 465
)

// ErrAuth marks credential rejection at session open. It is fatal for the
// whole batch; no message is attempted after it.
var ErrAuth = errors.New("smtp authentication failed")

// Credentials authenticates the SMTP session.
type Credentials struct {
	Username string
	Password string
}

// Config carries the transport settings for a Mailer.
type Config struct {
	Host string
	Port int

	// From is the sender address placed in From/Reply-To headers and used as
	// the envelope sender. When empty, each message falls back to its own
	// recipient address.
	From string
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Host) == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	return c
}

// session is the slice of the SMTP protocol the batch sender drives. The
// production implementation is *smtp.Client over a TLS connection.
type session interface {
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Reset() error
	Quit() error
}

// Delivery records one recipient whose transmission failed after the session
// was established.
type Delivery struct {
	Addr string
	Err  error
}

// Report summarizes a batch send. len(Sent)+len(Failed) equals the number of
// attempted recipients; Sent preserves recipient order.
type Report struct {
	Sent   []string
	Failed []Delivery
}

// Mailer sends outreach batches.
type Mailer struct {
	cfg Config

	// Logf reports per-recipient failures. Defaults to log.Printf.
	Logf func(format string, args ...any)

	// dial opens the transport session. Overridable in tests.
	dial func(ctx context.Context, addr, host string) (session, error)
}

func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg.withDefaults(),
		Logf: log.Printf,
		dial: dialTLS,
	}
}

func dialTLS(ctx context.Context, addr, host string) (session, error) {
	d := tls.Dialer{Config: &tls.Config{ServerName: host}}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// SendBatch opens one session, authenticates once, and transmits one message
// per recipient. A failed recipient is logged, recorded in Report.Failed and
// skipped; a dial or authentication failure aborts the batch before any
// transmission. The session is never reopened mid-batch.
//
// Each recipient's address is reused when present and re-synthesized from the
// template otherwise.
func (m *Mailer) SendBatch(
	ctx context.Context,
	recipients []pipeline.Recipient,
	tmpl pattern.Template,
	templates Templates,
	att Attachment,
	creds Credentials,
) (Report, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return Report{}, errors.New("mail credentials are required")
	}
	templates = templates.WithDefaults()

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	s, err := m.dial(ctx, addr, m.cfg.Host)
	if err != nil {
		return Report{}, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer func() {
		_ = s.Quit()
	}()

	auth := smtp.PlainAuth("", creds.Username, creds.Password, m.cfg.Host)
	if err := s.Auth(auth); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	var rep Report
	for _, r := range recipients {
		first, _ := pattern.SplitName(r.Name)
		to := strings.TrimSpace(r.Email)
		if to == "" {
			to = pattern.Synthesize(tmpl, r.Name)
		}
		from := strings.TrimSpace(m.cfg.From)
		if from == "" {
			from = to
		}

		msg, err := composeMessage(from, to, first, r.Company, templates, att)
		if err == nil {
			err = transmit(s, from, to, msg)
		}
		if err != nil {
			m.logf("send to %s failed: %v", to, err)
			rep.Failed = append(rep.Failed, Delivery{Addr: to, Err: err})
			// Clear any half-open mail transaction before the next recipient.
			_ = s.Reset()
			continue
		}
		rep.Sent = append(rep.Sent, to)
	}
	return rep, nil
}

func transmit(s session, from, to string, msg []byte) error {
	if err := s.Mail(from); err != nil {
		return err
	}
	if err := s.Rcpt(to); err != nil {
		return err
	}
	w, err := s.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (m *Mailer) logf(format string, args ...any) {
	if m.Logf != nil {
		m.Logf(format, args...)
	}
}
