package notification

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/vollink/vollink-api/internal/config"
)

// Mailer delivers the platform's transactional emails. All sends are
// best-effort: callers log failures and move on, they never roll back the
// state change that triggered the email.
type Mailer interface {
	SendRegistrationConfirmation(to, volunteerName, eventTitle, eventDate, eventLocation, orgName string) error
	SendNewApplicationAlert(to, volunteerName, eventTitle string) error
	SendAcceptance(to, volunteerName, eventTitle, orgName string) error
	SendRejection(to, volunteerName, eventTitle, orgName string) error
}

// SMTPMailer sends mail through a plain SMTP server.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer constructs an SMTPMailer from config.
func NewSMTPMailer(cfg config.EmailConfig) (*SMTPMailer, error) {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return nil, fmt.Errorf("smtp_host is required")
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("email from address is required")
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}, nil
}

func (m *SMTPMailer) SendRegistrationConfirmation(to, volunteerName, eventTitle, eventDate, eventLocation, orgName string) error {
	subject := fmt.Sprintf("Event Registration Confirmation - %s", eventTitle)

	body := strings.Builder{}
	body.WriteString(fmt.Sprintf("Dear %s,\n\n", volunteerName))
	body.WriteString(fmt.Sprintf("Thank you for registering for %s!\n\n", eventTitle))
	body.WriteString("Event Details:\n")
	body.WriteString(fmt.Sprintf("Date: %s\n", fallback(eventDate, "TBD")))
	body.WriteString(fmt.Sprintf("Location: %s\n", fallback(eventLocation, "TBD")))
	body.WriteString(fmt.Sprintf("Organization: %s\n\n", orgName))
	body.WriteString("Your application is currently under review. You will receive another email once the organization has made a decision.\n\n")
	body.WriteString("We appreciate your commitment to making a difference in our community.\n\n")
	body.WriteString("Best regards,\nVolunteer Management Team\n")

	return m.send(to, subject, body.String())
}

func (m *SMTPMailer) SendNewApplicationAlert(to, volunteerName, eventTitle string) error {
	subject := fmt.Sprintf("Volunteer Applied Notification - %s", eventTitle)

	body := strings.Builder{}
	body.WriteString("Dear Organization,\n\n")
	body.WriteString(fmt.Sprintf("This is to inform you that %s has applied to participate in %s.\n\n", volunteerName, eventTitle))
	body.WriteString("Volunteer Details:\n")
	body.WriteString(fmt.Sprintf("Name: %s\n", volunteerName))
	body.WriteString(fmt.Sprintf("Event: %s\n", eventTitle))
	body.WriteString(fmt.Sprintf("Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	body.WriteString("Best regards,\nVolunteer Management System\n")

	return m.send(to, subject, body.String())
}

func (m *SMTPMailer) SendAcceptance(to, volunteerName, eventTitle, orgName string) error {
	subject := fmt.Sprintf("Application Accepted - %s", eventTitle)

	body := strings.Builder{}
	body.WriteString(fmt.Sprintf("Dear %s,\n\n", volunteerName))
	body.WriteString(fmt.Sprintf("Congratulations! Your application to participate in %s has been accepted by %s.\n\n", eventTitle, orgName))
	body.WriteString("Thank you for your commitment to volunteering. The organization will contact you with further details about the event.\n\n")
	body.WriteString("Please make sure to:\n")
	body.WriteString("1. Mark this date in your calendar\n")
	body.WriteString("2. Arrive on time\n")
	body.WriteString("3. Contact the organization if you need to cancel\n\n")
	body.WriteString("Best regards,\nVolunteer Management Team\n")

	return m.send(to, subject, body.String())
}

func (m *SMTPMailer) SendRejection(to, volunteerName, eventTitle, orgName string) error {
	subject := fmt.Sprintf("Application Status Update - %s", eventTitle)

	body := strings.Builder{}
	body.WriteString(fmt.Sprintf("Dear %s,\n\n", volunteerName))
	body.WriteString(fmt.Sprintf("Thank you for your interest in %s. Unfortunately, %s is unable to accept your application at this time.\n\n", eventTitle, orgName))
	body.WriteString("This could be due to various reasons such as:\n")
	body.WriteString("- Limited volunteer positions\n")
	body.WriteString("- Specific skill requirements\n")
	body.WriteString("- Schedule constraints\n\n")
	body.WriteString("We encourage you to:\n")
	body.WriteString("1. Explore other volunteering opportunities on our platform\n")
	body.WriteString("2. Update your profile with additional skills\n")
	body.WriteString("3. Apply for future events that match your interests\n\n")
	body.WriteString("Best regards,\nVolunteer Management Team\n")

	return m.send(to, subject, body.String())
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient email is required")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		m.from, to, subject)

	message := []byte(headers + body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if strings.TrimSpace(m.username) != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, message)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
