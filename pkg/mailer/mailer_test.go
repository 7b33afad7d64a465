package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &fakeDialer{}
	m := &smtpMailer{dialer: d, from: "noreply@agency.test", name: "Agency", log: zap.NewNop()}

	err := m.Send(context.Background(), Message{To: "ada@example.com", Subject: "Hello", HTML: "<p>Hi</p>"})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	assert.Equal(t, []string{"ada@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, d.sent[0].GetHeader("Subject"))
	assert.Contains(t, d.sent[0].GetHeader("Message-ID")[0], "@agency.test>")

	var buf bytes.Buffer
	_, err = d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>Hi</p>")
}

func TestSMTPMailer_SendError(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	m := &smtpMailer{dialer: d, from: "noreply@agency.test", log: zap.NewNop()}

	err := m.Send(context.Background(), Message{To: "ada@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zap.NewNop()).Send(context.Background(), Message{To: "a@b.c"}))
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "agency.test", domainOf("noreply@agency.test"))
	assert.Equal(t, "localhost", domainOf(""))
}
