package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"text/template"

	"reelstore/internal/models"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// MailerService delivers email best-effort through a bounded queue and a
// single background worker. Enqueue never blocks a request and delivery
// failures are logged, never surfaced to HTTP callers.
type MailerService struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string

	queue    chan Message
	errorLog *log.Logger
	infoLog  *log.Logger
}

func NewMailerService(host string, port int, username, password, from, adminEmail string, infoLog, errorLog *log.Logger) *MailerService {
	return &MailerService{
		Host:       host,
		Port:       port,
		Username:   username,
		Password:   password,
		From:       from,
		AdminEmail: adminEmail,
		queue:      make(chan Message, 128),
		errorLog:   errorLog,
		infoLog:    infoLog,
	}
}

// Run drains the queue until the context is cancelled. Start it once from
// main.
func (m *MailerService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			if err := m.send(msg); err != nil {
				m.errorLog.Printf("mailer: send to %s failed: %v", msg.To, err)
			}
		}
	}
}

// Enqueue drops the message if the queue is full rather than stall a request.
func (m *MailerService) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
	default:
		m.errorLog.Printf("mailer: queue full, dropping message to %s", msg.To)
	}
}

func (m *MailerService) send(msg Message) error {
	if m.Host == "" {
		return fmt.Errorf("smtp not configured")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	buf.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(addr, auth, m.From, []string{msg.To}, buf.Bytes())
}

var deliveryTmpl = template.Must(template.New("delivery").Parse(
	`Hi {{.Name}},

Thank you for your purchase of {{.Package}}.

Your download page:
{{.PageURL}}

Your files:
{{range .Links}}{{.}}
{{end}}
The link is personal to you. If anything looks wrong, just reply to this email.
`))

// EnqueueDelivery sends the purchased content links. Safe to call repeatedly
// for the same redemption.
func (m *MailerService) EnqueueDelivery(rec models.RedemptionRecord, baseURL string) {
	var body bytes.Buffer
	err := deliveryTmpl.Execute(&body, struct {
		Name    string
		Package string
		PageURL string
		Links   []string
	}{
		Name:    rec.Customer.FullName,
		Package: rec.PackageID,
		PageURL: downloadPageURL(baseURL, rec.Token),
		Links:   downloadLinks(baseURL, rec.Token, rec.Items),
	})
	if err != nil {
		m.errorLog.Printf("mailer: render delivery email: %v", err)
		return
	}
	m.Enqueue(Message{
		To:      rec.Customer.Email,
		Subject: fmt.Sprintf("Your %s download", rec.PackageID),
		Body:    body.String(),
	})
	if m.infoLog != nil {
		m.infoLog.Printf("mailer: queued delivery email for order %s", rec.OrderID)
	}
}

// EnqueueContact relays a contact-form submission: one notice to the admin
// inbox, one acknowledgement back to the customer.
func (m *MailerService) EnqueueContact(req models.ContactRequest) {
	if m.AdminEmail != "" {
		m.Enqueue(Message{
			To:      m.AdminEmail,
			Subject: "Contact form: " + req.FullName,
			Body: fmt.Sprintf("From: %s <%s>\n\n%s\n", req.FullName, req.Email,
				strings.TrimSpace(req.Issue)),
		})
	}
	m.Enqueue(Message{
		To:      req.Email,
		Subject: "We received your message",
		Body: fmt.Sprintf("Hi %s,\n\nThanks for reaching out. We'll get back to you shortly.\n",
			req.FullName),
	})
}
