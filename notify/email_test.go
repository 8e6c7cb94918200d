// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"github.com/danielhkuo/baseball-dictionary/models"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

type recorder struct {
	mu   sync.Mutex
	sent []sentMail
}

func (r *recorder) send(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
	return nil
}

func newTestMailer(cfg Config) (*Mailer, *recorder) {
	rec := &recorder{}
	m := NewMailer(cfg)
	m.send = rec.send
	return m, rec
}

func configured() Config {
	return Config{
		Host:       "smtp.example.com",
		Port:       "587",
		From:       "dictionary@example.com",
		FromName:   "Baseball Dictionary",
		AdminEmail: "admin@example.com",
	}
}

func TestMailer_NotConfigured(t *testing.T) {
	m, rec := newTestMailer(Config{AdminEmail: "admin@example.com"})
	if m.IsConfigured() {
		t.Fatal("expected mailer without host to be unconfigured")
	}
	m.SubmissionReceived(models.Submission{Term: "Balk"})
	m.Wait()
	if len(rec.sent) != 0 {
		t.Errorf("expected no mail, got %d", len(rec.sent))
	}
}

func TestMailer_SubmissionReceived(t *testing.T) {
	m, rec := newTestMailer(configured())
	m.SubmissionReceived(models.Submission{ID: "1", Term: "Balk", Analogy: "False start", Category: models.CategoryOnTheMound, SubmittedBy: "Casey"})
	m.Wait()

	if len(rec.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(rec.sent))
	}
	got := rec.sent[0]
	if got.addr != "smtp.example.com:587" {
		t.Errorf("unexpected server %q", got.addr)
	}
	if got.to[0] != "admin@example.com" {
		t.Errorf("expected admin recipient, got %v", got.to)
	}
	for _, want := range []string{"Subject: New term submitted: Balk", "From: Baseball Dictionary <dictionary@example.com>", "False start"} {
		if !strings.Contains(got.msg, want) {
			t.Errorf("message missing %q:\n%s", want, got.msg)
		}
	}
}

func TestMailer_SubmitterNeedsEmail(t *testing.T) {
	m, rec := newTestMailer(configured())
	m.SubmissionApproved(models.Submission{ID: "1", Term: "Balk"})
	m.Wait()
	if len(rec.sent) != 0 {
		t.Fatalf("expected no mail without submitter email, got %d", len(rec.sent))
	}

	email := "fan@example.com"
	m.SubmissionRejected(models.Submission{ID: "2", Term: "Balk", SubmittedBy: "Fan", Email: &email}, "duplicate")
	m.Wait()
	if len(rec.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(rec.sent))
	}
	if rec.sent[0].to[0] != email {
		t.Errorf("expected mail to submitter, got %v", rec.sent[0].to)
	}
	if !strings.Contains(rec.sent[0].msg, "Reason: duplicate") {
		t.Errorf("expected reason in body:\n%s", rec.sent[0].msg)
	}
}

func TestRender_RejectedWithoutReason(t *testing.T) {
	body, err := render(rejectedTemplate, mailData{Submission: models.Submission{Term: "Balk", SubmittedBy: "Fan"}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(body, "Reason:") {
		t.Errorf("expected no reason line:\n%s", body)
	}
}
