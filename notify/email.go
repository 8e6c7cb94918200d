// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
	"text/template"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// Config holds SMTP configuration
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	FromName   string
	AdminEmail string
}

// Notifier is told about submission events. Implementations must not block
// the caller.
type Notifier interface {
	SubmissionReceived(sub models.Submission)
	SubmissionApproved(sub models.Submission)
	SubmissionRejected(sub models.Submission, reason string)
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends submission notifications by email. Sends happen in the
// background and failures are only logged.
type Mailer struct {
	config Config
	server string
	auth   smtp.Auth
	send   SendFunc
	wg     sync.WaitGroup
}

var _ Notifier = (*Mailer)(nil)

func NewMailer(config Config) *Mailer {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &Mailer{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
		send:   smtp.SendMail,
	}
}

// IsConfigured returns true if email is configured
func (m *Mailer) IsConfigured() bool {
	return m.config.Host != "" && m.config.Port != "" && m.config.From != ""
}

// SubmissionReceived tells the admin a new term is waiting.
func (m *Mailer) SubmissionReceived(sub models.Submission) {
	if m.config.AdminEmail == "" {
		return
	}
	m.dispatch("submission received", m.config.AdminEmail, "New term submitted: "+sub.Term, receivedTemplate, mailData{Submission: sub})
}

// SubmissionApproved thanks the submitter, if they left an email.
func (m *Mailer) SubmissionApproved(sub models.Submission) {
	if !sub.HasEmail() {
		return
	}
	m.dispatch("submission approved", *sub.Email, "Your term was approved: "+sub.Term, approvedTemplate, mailData{Submission: sub})
}

// SubmissionRejected tells the submitter, if they left an email.
func (m *Mailer) SubmissionRejected(sub models.Submission, reason string) {
	if !sub.HasEmail() {
		return
	}
	m.dispatch("submission rejected", *sub.Email, "Your term was not added: "+sub.Term, rejectedTemplate, mailData{Submission: sub, Reason: reason})
}

// Wait blocks until queued sends have finished.
func (m *Mailer) Wait() {
	m.wg.Wait()
}

func (m *Mailer) dispatch(event, to, subject string, tmpl *template.Template, data mailData) {
	if !m.IsConfigured() {
		return
	}
	body, err := render(tmpl, data)
	if err != nil {
		slog.Error("failed to render email", "event", event, "error", err)
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.SendEmail([]string{to}, subject, body); err != nil {
			slog.Error("failed to send email", "event", event, "id", data.Submission.ID, "error", err)
			return
		}
		slog.Info("email sent", "event", event, "id", data.Submission.ID)
	}()
}

// SendEmail sends a plain text email
func (m *Mailer) SendEmail(to []string, subject, body string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := m.config.From
	if m.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.FromName, m.config.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		strings.Join(to, ", "),
		from,
		subject,
		body,
	))

	return m.send(m.server, m.auth, m.config.From, to, msg)
}

type mailData struct {
	Submission models.Submission
	Reason     string
}

func render(t *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var receivedTemplate = template.Must(template.New("received").Parse(`A new term is waiting for review.

Term:         {{.Submission.Term}}
Analogy:      {{.Submission.Analogy}}
Category:     {{.Submission.Category}}
Submitted by: {{.Submission.SubmittedBy}}
`))

var approvedTemplate = template.Must(template.New("approved").Parse(`Hi {{.Submission.SubmittedBy}},

"{{.Submission.Term}}" is now in the Baseball Bathroom Dictionary. Thanks for the suggestion!
`))

var rejectedTemplate = template.Must(template.New("rejected").Parse(`Hi {{.Submission.SubmittedBy}},

"{{.Submission.Term}}" was not added to the Baseball Bathroom Dictionary.
{{- if .Reason}}

Reason: {{.Reason}}
{{- end}}
`))

// Nop discards every notification.
type Nop struct{}

func (Nop) SubmissionReceived(models.Submission)         {}
func (Nop) SubmissionApproved(models.Submission)         {}
func (Nop) SubmissionRejected(models.Submission, string) {}
