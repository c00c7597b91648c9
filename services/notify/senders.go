// Package notifysvc implements the per-channel delivery senders used by the
// notification service. Email delivers through the app EmailService; SMS and
// WhatsApp have no provider integration yet and log to the console, which is
// all the demo dataset needs (seeded users carry no phone numbers).
package notifysvc

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/notification"
	"github.com/smarttrack/backend/core/user"
)

type emailSender struct {
	mailSvc core.EmailService
}

var _ notification.Sender = (*emailSender)(nil)

func NewEmailSender(mailSvc core.EmailService) notification.Sender {
	return &emailSender{mailSvc: mailSvc}
}

// Send emails the notification. Principal and teacher ids are their login
// emails; other roles only receive the in-app copy.
func (s *emailSender) Send(n notification.Generated, recipient user.User) error {
	if !strings.Contains(recipient.ID, "@") {
		return fmt.Errorf("user %s has no email address", recipient.ID)
	}
	s.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: recipient.Name, Address: recipient.ID}},
		Subject:     n.NotificationType,
		TextContent: n.Message,
	})
	return nil
}

type consoleSender struct {
	channel notification.Channel
	logger  core.Logger
}

var _ notification.Sender = (*consoleSender)(nil)

func NewConsoleSender(channel notification.Channel, logger core.Logger) notification.Sender {
	return &consoleSender{channel: channel, logger: logger}
}

func (s *consoleSender) Send(n notification.Generated, recipient user.User) error {
	s.logger.Info(fmt.Sprintf("%s to %s (%s): %s", s.channel, recipient.Name, recipient.ID, n.Message))
	return nil
}

// NewSenders wires the default sender per channel.
func NewSenders(mailSvc core.EmailService, logger core.Logger) map[notification.Channel]notification.Sender {
	return map[notification.Channel]notification.Sender{
		notification.ChannelEmail:    NewEmailSender(mailSvc),
		notification.ChannelSMS:      NewConsoleSender(notification.ChannelSMS, logger),
		notification.ChannelWhatsApp: NewConsoleSender(notification.ChannelWhatsApp, logger),
	}
}
