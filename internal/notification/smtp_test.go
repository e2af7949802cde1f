package notification

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// fakeSMTPServer accepts a single session and records the DATA payload
type fakeSMTPServer struct {
	ln         net.Listener
	rejectRcpt bool

	mu   sync.Mutex
	rcpt []string
	data string
	done chan struct{}
}

func startFakeSMTP(t *testing.T, rejectRcpt bool) *fakeSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTPServer{ln: ln, rejectRcpt: rejectRcpt, done: make(chan struct{})}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *fakeSMTPServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTPServer) serve() {
	defer close(s.done)
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch cmd {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 8BITMIME")
		case "MAIL":
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			if s.rejectRcpt {
				_ = tp.PrintfLine("550 mailbox unavailable")
				continue
			}
			s.mu.Lock()
			s.rcpt = append(s.rcpt, line)
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.data = strings.Join(lines, "\n")
			s.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("250 OK")
		}
	}
}

func (s *fakeSMTPServer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatal("fake SMTP session did not finish")
	}
}

func testRecord() *entity.Record {
	rec := &entity.Record{
		InvoiceNumber:  "VREB1234",
		BillToName:     "Acme Holdings",
		BillToEmail:    "billing@acme.test",
		TenantName:     "John Tenant",
		InvoiceDate:    "2024-03-01",
		PropertyName:   "Marina Tower 12B",
		RentalPrice:    decimal.NewFromInt(120000),
		CommissionRate: decimal.NewFromInt(1000),
		Status:         entity.StatusPending,
	}
	rec.ComputeAmounts(decimal.RequireFromString("0.05"))
	return rec
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VREB1234.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3 fake invoice body"), 0o644))
	return path
}

func newTestSMTPNotifier(port int) *SMTPNotifier {
	return NewSMTPNotifier(SMTPConfig{
		Host:     "127.0.0.1",
		Port:     port,
		From:     "invoices@vreb.test",
		FromName: "VREB Accounts",
		Timeout:  5 * time.Second,
	}, entity.DefaultProfile(), zap.NewNop())
}

func TestSMTPNotifier_Send(t *testing.T) {
	server := startFakeSMTP(t, false)
	n := newTestSMTPNotifier(server.port())

	sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), writeArtifact(t))
	require.NoError(t, err)
	assert.True(t, sent)

	server.wait(t)
	server.mu.Lock()
	defer server.mu.Unlock()

	require.Len(t, server.rcpt, 1)
	assert.Contains(t, server.rcpt[0], "billing@acme.test")

	msg, err := mail.ReadMessage(strings.NewReader(server.data))
	require.NoError(t, err)
	assert.Equal(t, "Invoice #VREB1234 - Payment Due", msg.Header.Get("Subject"))
	assert.Contains(t, msg.Header.Get("From"), "invoices@vreb.test")
	assert.Contains(t, msg.Header.Get("To"), "billing@acme.test")

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	var body, attachment string
	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		raw, err := io.ReadAll(part)
		require.NoError(t, err)

		if part.FileName() == "" {
			body = string(raw)
			continue
		}
		assert.Equal(t, "VREB1234.pdf", part.FileName())
		assert.True(t, strings.HasPrefix(part.Header.Get("Content-Type"), "application/pdf"))
		assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))
		for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
			assert.LessOrEqual(t, len(strings.TrimRight(line, "\r")), 76)
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.NewReplacer("\r", "", "\n", "").Replace(string(raw)))
		require.NoError(t, err)
		attachment = string(decoded)
	}

	assert.Contains(t, body, "Dear Acme Holdings,")
	assert.Equal(t, "%PDF-1.3 fake invoice body", attachment)
}

func TestSMTPNotifier_Send_RecipientRejected(t *testing.T) {
	server := startFakeSMTP(t, true)
	n := newTestSMTPNotifier(server.port())

	sent, err := n.Send(context.Background(), "nobody@acme.test", testRecord(), writeArtifact(t))
	assert.NoError(t, err)
	assert.False(t, sent)
}

func TestSMTPNotifier_Send_DialFailure(t *testing.T) {
	n := newTestSMTPNotifier(2525)
	n.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		assert.Equal(t, "127.0.0.1:"+strconv.Itoa(2525), addr)
		return nil, errors.New("connection refused")
	}

	sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), writeArtifact(t))
	require.Error(t, err)
	assert.False(t, sent)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPNotifier_Send_MissingArtifact(t *testing.T) {
	n := newTestSMTPNotifier(2525)
	n.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		t.Fatal("should not dial without an attachment")
		return nil, nil
	}

	sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.NoError(t, err)
	assert.False(t, sent)
}

func TestSMTPNotifier_Send_InvalidInput(t *testing.T) {
	n := newTestSMTPNotifier(2525)

	_, err := n.Send(context.Background(), "", testRecord(), "x.pdf")
	assert.ErrorIs(t, err, ErrNoRecipient)

	_, err = n.Send(context.Background(), "a@b.test", nil, "x.pdf")
	assert.ErrorIs(t, err, ErrNilRecord)
}
