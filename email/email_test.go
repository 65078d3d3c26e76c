package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inkwell/config"
)

func TestComposeContactMessage(t *testing.T) {
	msg := composeContactMessage("owner@x.com", "owner@x.com", "Alice", "a@x.com", "555-0100", "Hello there")

	assert.True(t, strings.HasPrefix(msg, "From: owner@x.com\r\n"))
	assert.Contains(t, msg, "To: owner@x.com\r\n")
	assert.Contains(t, msg, "Subject: New Message\r\n")

	// Submitted fields appear verbatim in the body.
	assert.Contains(t, msg, "Sender: a@x.com")
	assert.Contains(t, msg, "Hello there")
	assert.Contains(t, msg, "Phone:555-0100")
	assert.Contains(t, msg, "Name:Alice")
}

func TestNewService(t *testing.T) {
	svc := NewService(config.SMTP{
		Host:        "smtp.example.com",
		Port:        "587",
		User:        "owner@x.com",
		Password:    "secret",
		To:          "owner@x.com",
		DialTimeout: 5 * time.Second,
	})

	assert.Equal(t, "smtp.example.com", svc.host)
	assert.Equal(t, 5*time.Second, svc.dialTimeout)
}

func TestSendContactMessage_UnreachableRelay(t *testing.T) {
	svc := NewService(config.SMTP{
		Host:        "127.0.0.1",
		Port:        "1", // nothing listens here
		DialTimeout: 100 * time.Millisecond,
	})

	err := svc.SendContactMessage("Alice", "a@x.com", "", "Hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mail relay")
}
