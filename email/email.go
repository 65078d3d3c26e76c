package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"inkwell/config"
)

// Service sends mail through an authenticated SMTP relay. The dial timeout
// doubles as the deadline for the whole transaction so a stuck relay cannot
// hold a request forever.
type Service struct {
	host        string
	port        string
	user        string
	password    string
	to          string
	dialTimeout time.Duration
}

func NewService(cfg config.SMTP) *Service {
	return &Service{
		host:        cfg.Host,
		port:        cfg.Port,
		user:        cfg.User,
		password:    cfg.Password,
		to:          cfg.To,
		dialTimeout: cfg.DialTimeout,
	}
}

// SendContactMessage forwards a contact-form submission to the site owner.
// The submitted fields are embedded verbatim in a plain-text body.
func (s *Service) SendContactMessage(name, from, phone, message string) error {
	msg := composeContactMessage(s.user, s.to, name, from, phone, message)

	addr := net.JoinHostPort(s.host, s.port)
	conn, err := net.DialTimeout("tcp", addr, s.dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to mail relay: %w", err)
	}
	conn.SetDeadline(time.Now().Add(s.dialTimeout))

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("starting mail session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("starting TLS: %w", err)
		}
	}

	if s.user != "" {
		auth := smtp.PlainAuth("", s.user, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating with mail relay: %w", err)
		}
	}

	if err := client.Mail(s.user); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := client.Rcpt(s.to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening message body: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing message body: %w", err)
	}

	return client.Quit()
}

func composeContactMessage(from, to, name, sender, phone, message string) string {
	body := fmt.Sprintf("Sender: %s\n%s\nPhone:%s\nName:%s", sender, message, phone, name)

	return fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: New Message\r\n"+
		"\r\n"+
		"%s\r\n", from, to, body)
}
