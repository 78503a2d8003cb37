package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/pkg/logger"
)

func TestRenderNotificationEscapesMessage(t *testing.T) {
	body, err := render("notification.html", NotificationData{
		UserName:    "Ayşe",
		Title:       "Yeni anket",
		Message:     "<b>50 puan</b> kazanın",
		ProductName: "Kazanion",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Merhaba Ayşe")
	assert.Contains(t, body, "&lt;b&gt;50 puan&lt;/b&gt;")
	assert.NotContains(t, body, "<b>50 puan</b>")
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("Kazanion", "noreply@kazanion.app", "user@example.com", "Hello", "<p>hi</p>"))

	head, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, head, "From: Kazanion <noreply@kazanion.app>")
	assert.Contains(t, head, "To: user@example.com")
	assert.Contains(t, head, "Content-Type: text/html; charset=UTF-8")
	assert.Equal(t, "<p>hi</p>", body)
}

func TestServiceDisabledWithoutHost(t *testing.T) {
	s := NewService(Config{From: "noreply@kazanion.app"}, logger.NewNop())
	assert.False(t, s.Enabled())

	s = NewService(Config{Host: "smtp.example.com", Port: 465, From: "noreply@kazanion.app"}, logger.NewNop())
	assert.True(t, s.Enabled())
}
