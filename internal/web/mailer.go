package web

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
)

// Submission is a validated, normalized contact form entry.
type Submission struct {
	Name      string
	Email     string
	Message   string
	Timestamp time.Time
	RemoteIP  string
}

// Mailer delivers a contact submission to the site owner.
type Mailer interface {
	Send(ctx context.Context, sub Submission) error
}

// SMTPConfig holds delivery settings for the SMTP mailer.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string // envelope/header sender, usually Username
	To          string // site owner's inbox
	DialTimeout time.Duration
}

// SMTPMailer sends submissions over SMTP with STARTTLS. Deliveries go
// through a circuit breaker so a dead upstream fails fast instead of tying
// up request handlers on dial timeouts.
type SMTPMailer struct {
	cfg     SMTPConfig
	breaker *gobreaker.CircuitBreaker
	logger  *log.Logger
}

// NewSMTPMailer creates a mailer for the given config. The breaker trips
// after three consecutive failures and probes again after thirty seconds.
func NewSMTPMailer(cfg SMTPConfig, logger *log.Logger) *SMTPMailer {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("mail circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}
	return &SMTPMailer{
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Send delivers the submission, counting the attempt against the breaker.
func (m *SMTPMailer) Send(ctx context.Context, sub Submission) error {
	_, err := m.breaker.Execute(func() (any, error) {
		return nil, m.send(ctx, sub)
	})
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) send(ctx context.Context, sub Submission) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dialer := net.Dialer{Timeout: m.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(m.cfg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := wc.Write(buildMessage(m.cfg, sub)); err != nil {
		wc.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return c.Quit()
}

// headerValue strips control characters from user input before it is placed
// in a mail header. A CR or LF here would terminate the header line and let
// the sender inject arbitrary headers into the message.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// buildMessage renders the notification as multipart/alternative with a
// plain-text part and a small HTML part. Reply-To points at the visitor so
// the owner can answer directly.
func buildMessage(cfg SMTPConfig, sub Submission) []byte {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	ts := sub.Timestamp.Format("2006-01-02 15:04:05")
	ip := sub.RemoteIP
	if ip == "" {
		ip = "unknown"
	}

	name := headerValue(sub.Name)
	fmt.Fprintf(&buf, "Subject: Portfolio contact: %s\r\n", name)
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", name, cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", cfg.To)
	fmt.Fprintf(&buf, "Reply-To: %s\r\n", headerValue(sub.Email))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	plain, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	fmt.Fprintf(plain, "New contact form submission\r\n")
	fmt.Fprintf(plain, "===========================\r\n\r\n")
	fmt.Fprintf(plain, "Name:  %s\r\n", sub.Name)
	fmt.Fprintf(plain, "Email: %s\r\n", sub.Email)
	fmt.Fprintf(plain, "Time:  %s\r\n", ts)
	fmt.Fprintf(plain, "IP:    %s\r\n\r\n", ip)
	fmt.Fprintf(plain, "%s\r\n\r\n", sub.Message)
	fmt.Fprintf(plain, "Reply directly to this email to respond.\r\n")

	htmlPart, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	fmt.Fprintf(htmlPart, "<h2>New contact form submission</h2>")
	fmt.Fprintf(htmlPart, "<p><b>Name:</b> %s<br>", html.EscapeString(sub.Name))
	fmt.Fprintf(htmlPart, "<b>Email:</b> <a href=\"mailto:%s\">%s</a><br>",
		html.EscapeString(sub.Email), html.EscapeString(sub.Email))
	fmt.Fprintf(htmlPart, "<b>Time:</b> %s<br><b>IP:</b> %s</p>", ts, html.EscapeString(ip))
	fmt.Fprintf(htmlPart, "<blockquote style=\"white-space:pre-wrap\">%s</blockquote>",
		html.EscapeString(sub.Message))

	mw.Close()
	return buf.Bytes()
}
