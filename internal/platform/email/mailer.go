package email

// Mailer sends email messages.
type Mailer interface {
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
}

// Message is an HTML email rendered from a named template.
type Message struct {
	To       []string
	Subject  string
	Template string
	Data     map[string]string
}

// Queue accepts messages for asynchronous delivery.
type Queue interface {
	Enqueue(msg Message) bool
}
