package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	jemail "github.com/jordan-wright/email"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "layout.html"

var _ Mailer = (*SMTPMailer)(nil)

type templateMap map[string]*template.Template

type sendFunc func(e *jemail.Email, addr string, auth smtp.Auth, timeout time.Duration) error

type SMTPMailer struct {
	user      string
	pass      string
	host      string
	port      int
	sender    string
	timeout   time.Duration
	templates templateMap
	send      sendFunc
}

func NewSMTPMailer(cfg config.SMTP, opts config.Email) (*SMTPMailer, error) {
	pages, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}

	tmplMap, err := parsePages(pages, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse pages with layout %q: %w", layoutFile, err)
	}

	sender := opts.Sender
	if sender == "" {
		sender = cfg.User
	}

	return &SMTPMailer{
		user:      cfg.User,
		pass:      cfg.Password,
		host:      cfg.Host,
		port:      cfg.Port,
		sender:    sender,
		timeout:   opts.Timeout.Duration,
		templates: tmplMap,
		send:      sendWithDeadline,
	}, nil
}

func (m *SMTPMailer) deliver(to []string, subject string, html []byte) error {
	e := jemail.NewEmail()
	e.From = m.sender
	e.To = to
	e.Subject = subject
	e.HTML = html

	addr := m.host + ":" + strconv.Itoa(m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := m.send(e, addr, auth, m.timeout); err != nil {
		return fmt.Errorf("send email to %q via %s: %w", to, addr, err)
	}

	slog.Info("Email sent.", "subject", subject)
	return nil
}

func (m *SMTPMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	tmpl, ok := m.templates[tmplName]
	if !ok {
		return fmt.Errorf("template does not exist: %s", tmplName)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutFile, data); err != nil {
		return fmt.Errorf("execute email template for subject %q: %w", subject, err)
	}

	return m.deliver(to, subject, buf.Bytes())
}

// sendWithDeadline runs the SMTP exchange of e on a connection that fails
// once timeout elapses. A zero timeout never expires.
func sendWithDeadline(e *jemail.Email, addr string, auth smtp.Auth, timeout time.Duration) error {
	from, err := mail.ParseAddress(e.From)
	if err != nil {
		return fmt.Errorf("parse sender %q: %w", e.From, err)
	}

	rcpts := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	for _, list := range [][]string{e.To, e.Cc, e.Bcc} {
		for _, a := range list {
			parsed, err := mail.ParseAddress(a)
			if err != nil {
				return fmt.Errorf("parse recipient %q: %w", a, err)
			}
			rcpts = append(rcpts, parsed.Address)
		}
	}

	raw, err := e.Bytes()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("split smtp address %q: %w", addr, err)
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("greeting: %w", err)
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("auth: %w", err)
			}
		}
	}

	if err := c.Mail(from.Address); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}

	for _, rcpt := range rcpts {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	return c.Quit()
}

// parsePages clones the layout once per page so every page can define its own blocks.
func parsePages(fsys fs.FS, layout string) (templateMap, error) {
	layoutTmpl, err := template.ParseFS(fsys, layout)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", layout, err)
	}

	tmplMap := make(templateMap)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk templates at path %q: %w", path, err)
		}

		const suffix = ".html"
		if d.IsDir() || path == layout || !strings.HasSuffix(path, suffix) {
			return nil
		}

		base, err := layoutTmpl.Clone()
		if err != nil {
			return fmt.Errorf("clone layout for %s: %w", path, err)
		}

		page, err := base.ParseFS(fsys, path)
		if err != nil {
			return fmt.Errorf("parse page %s: %w", path, err)
		}

		name := strings.TrimSuffix(path, suffix)
		tmplMap[name] = page
		slog.Debug("parsed page", "path", path, "name", name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load pages templates: %w", err)
	}

	return tmplMap, nil
}
