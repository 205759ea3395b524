// Package email notifies patients about admin decisions on their
// appointments. Delivery is best effort: failures are logged and never fail
// the mutation that triggered them.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/pkg/logger"
)

// Config holds SMTP settings. The notifier is disabled when Host is empty.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Sender struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewSender(cfg Config, l *logger.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: l,
	}
}

func (s *Sender) AppointmentScheduled(ctx context.Context, to string, appointment *model.Appointment) {
	subject := "Your appointment has been scheduled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment with Dr. %s has been scheduled for %s.",
		appointment.PatientName,
		appointment.PrimaryPhysician,
		appointment.Schedule.Format("Monday, January 2 2006 at 3:04 PM"),
	)
	if appointment.AdminNote != "" {
		body += "\n\nNote from our staff: " + appointment.AdminNote
	}
	s.send(to, subject, body)
}

func (s *Sender) AppointmentCancelled(ctx context.Context, to string, appointment *model.Appointment) {
	subject := "Your appointment has been cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment request with Dr. %s has been cancelled.\n\nReason: %s",
		appointment.PatientName,
		appointment.PrimaryPhysician,
		appointment.CancellationReason,
	)
	s.send(to, subject, body)
}

func (s *Sender) send(to, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	go func() {
		if err := s.dialer.DialAndSend(msg); err != nil {
			s.logger.Error(err, "failed to send notification email", "to", to, "subject", subject)
		}
	}()
}
