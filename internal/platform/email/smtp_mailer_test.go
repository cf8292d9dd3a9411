package email

import (
	"errors"
	"net"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	timex "github.com/ferdiebergado/pneumodetect/internal/pkg/time"
	jemail "github.com/jordan-wright/email"
)

func newTestMailer(t *testing.T, send sendFunc) *SMTPMailer {
	t.Helper()

	cfg := config.SMTP{Host: "smtp.example.com", Port: 2525, User: "mailer@example.com", Password: "secret"}
	mailer, err := NewSMTPMailer(cfg, config.Email{Sender: "PneumoDetect <no-reply@example.com>"})
	if err != nil {
		t.Fatal(err)
	}

	mailer.send = send
	return mailer
}

func TestSMTPMailer_SendHTML(t *testing.T) {
	t.Parallel()

	var (
		sent    *jemail.Email
		gotAddr string
	)

	mailer := newTestMailer(t, func(e *jemail.Email, addr string, _ smtp.Auth, _ time.Duration) error {
		sent, gotAddr = e, addr
		return nil
	})

	to := []string{"alice@example.com"}
	data := map[string]string{
		"Username":  "alice",
		"Code":      "123456",
		"Link":      "http://localhost:3000/verify-email?email=alice%40example.com&token=123456",
		"ExpiresIn": "24h0m0s",
	}

	if err := mailer.SendHTML(to, "Verify your email", "verification", data); err != nil {
		t.Fatalf("mailer.SendHTML() = %v, want: %v", err, nil)
	}

	if gotAddr != "smtp.example.com:2525" {
		t.Errorf("addr = %q, want: %q", gotAddr, "smtp.example.com:2525")
	}

	if sent.From != "PneumoDetect <no-reply@example.com>" {
		t.Errorf("sent.From = %q, want: %q", sent.From, "PneumoDetect <no-reply@example.com>")
	}

	body := string(sent.HTML)
	for _, want := range []string{"Hi alice", "123456", "<title>Verify your email</title>", "verify-email?email=alice%40example.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q:\n%s", want, body)
		}
	}
}

func TestSMTPMailer_SendHTMLUnknownTemplate(t *testing.T) {
	t.Parallel()

	mailer := newTestMailer(t, func(*jemail.Email, string, smtp.Auth, time.Duration) error {
		t.Error("send must not be called")
		return nil
	})

	if err := mailer.SendHTML([]string{"a@b.co"}, "x", "missing", nil); err == nil {
		t.Error("mailer.SendHTML() = nil, want: error")
	}
}

func TestSMTPMailer_SendError(t *testing.T) {
	t.Parallel()

	errSMTP := errors.New("connection refused")
	mailer := newTestMailer(t, func(*jemail.Email, string, smtp.Auth, time.Duration) error {
		return errSMTP
	})

	err := mailer.SendHTML([]string{"a@b.co"}, "hello", "verification", nil)
	if !errors.Is(err, errSMTP) {
		t.Errorf("mailer.SendHTML() = %v, want: %v", err, errSMTP)
	}
}

func TestSMTPMailer_StalledServerTimesOut(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	t.Cleanup(func() {
		close(stop)
		ln.Close()
	})

	// Accept the connection and never send the greeting.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		<-stop
	}()

	addr := ln.Addr().(*net.TCPAddr)
	cfg := config.SMTP{Host: "127.0.0.1", Port: addr.Port}
	opts := config.Email{
		Sender:  "no-reply@example.com",
		Timeout: timex.Duration{Duration: 100 * time.Millisecond},
	}

	mailer, err := NewSMTPMailer(cfg, opts)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- mailer.SendHTML([]string{"alice@example.com"}, "Verify your email", "verification", nil)
	}()

	select {
	case err := <-done:
		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() {
			t.Errorf("mailer.SendHTML() = %v, want: a timeout error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("mailer.SendHTML() did not return after the timeout")
	}
}
