package services

import (
	"fmt"
	"log"

	mail "github.com/go-mail/mail/v2"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type Mailer struct {
	dialer *mail.Dialer
	sender string
}

var mailer *Mailer

// InitMailer enables invitation emails. Without it the fan-out is the
// notification row alone.
func InitMailer(host string, port int, username, password, sender string) {
	mailer = &Mailer{
		dialer: mail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// sendInvitationMail delivers best-effort, off the request path, after
// the invitation transaction committed. Failure is logged and never
// surfaced; the notification row is the delivery of record.
func sendInvitationMail(invitee models.User, project *models.Project) {
	if mailer == nil {
		return
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", mailer.sender)
	msg.SetHeader("To", invitee.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Invitation to join '%s'", project.Title))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYou have been invited to join the project '%s'. Log in to accept or decline the invitation.\n",
		invitee.Name, project.Title,
	))

	go func() {
		if err := mailer.dialer.DialAndSend(msg); err != nil {
			log.Printf("Failed to send invitation email to %s: %v", invitee.Email, err)
		}
	}()
}
