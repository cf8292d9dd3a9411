package email

import "errors"

type StubMailer struct {
	SendHTMLFunc func(to []string, subject, tmplName string, data map[string]string) error
}

var _ Mailer = (*StubMailer)(nil)

func (m *StubMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	if m.SendHTMLFunc == nil {
		return errors.New("SendHTML not implemented by stub")
	}
	return m.SendHTMLFunc(to, subject, tmplName, data)
}

type StubQueue struct {
	EnqueueFunc func(msg Message) bool
}

var _ Queue = (*StubQueue)(nil)

func (q *StubQueue) Enqueue(msg Message) bool {
	if q.EnqueueFunc == nil {
		panic("Enqueue not implemented by stub")
	}
	return q.EnqueueFunc(msg)
}
