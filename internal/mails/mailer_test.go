package mails

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialer struct {
	sent  []*mail.Message
	calls int
	err   error
}

func (f *fakeDialer) DialAndSend(m ...*mail.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

var codeData = map[string]any{"username": "alice", "confirmationCode": "c0ffee"}

func TestParseEmailTmpl(t *testing.T) {
	parts, err := parseEmailTmpl("confirmation_code.tmpl", codeData)
	require.NoError(t, err)
	assert.Equal(t, "Your yamdb confirmation code", parts["subject"])
	assert.Contains(t, parts["plainBody"], "Hi alice")
	assert.Contains(t, parts["plainBody"], "c0ffee")
	assert.Contains(t, parts["htmlBody"], "<code>c0ffee</code>")

	_, err = parseEmailTmpl("missing.tmpl", codeData)
	assert.Error(t, err)
}

func TestMailer_Send(t *testing.T) {
	dialer := &fakeDialer{}
	m := &Mailer{Dialer: dialer, Sender: "yamdb <noreply@yamdb.local>"}

	require.NoError(t, m.Send("a@x.com", "confirmation_code.tmpl", codeData))
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"a@x.com"}, dialer.sent[0].GetHeader("To"))

	var buf bytes.Buffer
	_, err := dialer.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "c0ffee")
}

func TestMailer_SendSingleAttempt(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	m := &Mailer{Dialer: dialer, Sender: "noreply@yamdb.local"}

	err := m.Send("a@x.com", "confirmation_code.tmpl", codeData)
	assert.ErrorIs(t, err, dialer.err)
	assert.Equal(t, 1, dialer.calls)
}
