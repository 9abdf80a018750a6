package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	require.False(t, New(Config{}).Configured())
	require.False(t, New(Config{Host: "smtp.example.com"}).Configured())
	require.False(t, New(Config{From: "me@example.com"}).Configured())
	require.True(t, New(Config{Host: "smtp.example.com", From: "me@example.com"}).Configured())

	var nilMailer *Mailer
	require.False(t, nilMailer.Configured())
}

func TestSendUnconfigured(t *testing.T) {
	err := New(Config{}).Send("to@example.com", "Subject", "<p>hi</p>")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("me@example.com", "you@example.com", "Hello", "<p>body</p>")

	lines := strings.Split(msg, "\r\n")
	require.Equal(t, "From: me@example.com", lines[0])
	require.Equal(t, "To: you@example.com", lines[1])
	require.Equal(t, "Subject: Hello", lines[2])
	require.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	require.True(t, strings.HasSuffix(msg, "\r\n<p>body</p>"))
}
