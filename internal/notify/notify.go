// Package notify sends outcome emails to submitters.
//
// Notifications are strictly best-effort: the engines log failures and move
// on, because losing an email must never fail a migration or a moderation
// batch.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// Notifier is the outbound notification boundary used by the engines.
type Notifier interface {
	// SubmissionMigrated tells the submitter their media reached the host.
	SubmissionMigrated(submission *models.Submission) error

	// ModerationResult tells the submitter about a moderation decision for
	// one of their assets.
	ModerationResult(submission *models.Submission, asset *models.Asset, status models.ModerationStatus) error
}

// SMTPNotifier delivers notifications over plain SMTP.
type SMTPNotifier struct {
	addr   string
	from   string
	logger *log.Logger

	// send is swappable for tests.
	send func(addr, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a notifier pointed at the given SMTP server.
func NewSMTPNotifier(addr, from string, logger *log.Logger) *SMTPNotifier {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SMTPNotifier{
		addr:   addr,
		from:   from,
		logger: logger,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

// SubmissionMigrated emails the submitter that their submission is live.
func (n *SMTPNotifier) SubmissionMigrated(submission *models.Submission) error {
	if submission.NotifyEmail() == "" {
		return nil
	}

	subject := fmt.Sprintf("Your submission '%s' has been received", submission.Title())
	body := fmt.Sprintf("Thanks %s - the media for your submission '%s' has been uploaded and is awaiting review.",
		submission.Author(), submission.Title())

	return n.deliver(submission.NotifyEmail(), subject, body)
}

// ModerationResult emails the submitter about a moderation decision.
func (n *SMTPNotifier) ModerationResult(submission *models.Submission, asset *models.Asset, status models.ModerationStatus) error {
	if submission.NotifyEmail() == "" {
		return nil
	}

	subject := fmt.Sprintf("Your submission '%s' has been reviewed", submission.Title())
	body := fmt.Sprintf("An item in your submission '%s' is now marked %s.", submission.Title(), status)
	if status == models.StatusApproved && asset.HostURL() != "" {
		body = fmt.Sprintf("%s\n\nYou can see it at %s", body, asset.HostURL())
	}

	return n.deliver(submission.NotifyEmail(), subject, body)
}

func (n *SMTPNotifier) deliver(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := n.send(n.addr, n.from, []string{to}, []byte(msg)); err != nil {
		n.logger.Warn("failed to send notification email", "to", to, "err", err)
		return err
	}

	n.logger.Info("sent notification email", "to", to, "subject", subject)
	return nil
}
