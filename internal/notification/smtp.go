package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strconv"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	FromName           string
	Timeout            time.Duration
	RequireTLS         bool
	InsecureSkipVerify bool
}

// DialFunc opens the TCP connection to the mail server
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// SMTPNotifier sends the invoice as a mail attachment using STARTTLS and PLAIN auth
type SMTPNotifier struct {
	cfg     SMTPConfig
	profile entity.Profile
	dial    DialFunc
	now     func() time.Time
	logger  *zap.Logger
}

// NewSMTPNotifier creates an SMTPNotifier
func NewSMTPNotifier(cfg SMTPConfig, profile entity.Profile, logger *zap.Logger) *SMTPNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	return &SMTPNotifier{
		cfg:     cfg,
		profile: profile,
		dial:    dialer.DialContext,
		now:     time.Now,
		logger:  logger,
	}
}

// Send implements Notifier
func (n *SMTPNotifier) Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	if recipient == "" {
		return false, ErrNoRecipient
	}

	msg := BuildInvoiceMessage(recipient, rec, n.profile, artifactPath)
	raw, err := n.compose(msg)
	if err != nil {
		n.logger.Warn("Failed to build invoice mail",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.Error(err))
		return false, nil
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	conn, err := n.dial(ctx, "tcp", addr)
	if err != nil {
		n.logger.Error("Failed to connect to SMTP server",
			zap.String("addr", addr),
			zap.Error(err))
		return false, fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}

	deadline := n.now().Add(n.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if err := n.deliver(conn, msg.To, raw); err != nil {
		n.logger.Warn("SMTP delivery not accepted",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.String("recipient", recipient),
			zap.Error(err))
		return false, nil
	}

	n.logger.Info("Invoice mail sent",
		zap.String("invoice_number", rec.InvoiceNumber),
		zap.String("recipient", recipient))
	return true, nil
}

// deliver runs the SMTP conversation over an open connection
func (n *SMTPNotifier) deliver(conn net.Conn, to string, raw []byte) error {
	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("greeting: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{
			ServerName:         n.cfg.Host,
			InsecureSkipVerify: n.cfg.InsecureSkipVerify,
		}
		if err := client.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	} else if n.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS")
	}

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}

	return client.Quit()
}

// compose builds a multipart/mixed message with a text part and the PDF
func (n *SMTPNotifier) compose(msg Message) ([]byte, error) {
	// go-mail skips attachments it cannot stat without reporting it
	if _, err := os.Stat(msg.AttachmentPath); err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	m := mail.NewMsg()
	if err := m.FromFormat(n.cfg.FromName, n.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(n.now())
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	m.AttachFile(msg.AttachmentPath)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	return buf.Bytes(), nil
}
