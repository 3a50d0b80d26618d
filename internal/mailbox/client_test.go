package mailbox

import (
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
)

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "Weekly project update", "Weekly project update"},
		{"utf8 q-encoded", "=?UTF-8?Q?R=C3=A9union_projet?=", "Réunion projet"},
		{"utf8 b-encoded", "=?UTF-8?B?UHJvamVjdCBraWNrb2Zm?=", "Project kickoff"},
		{"malformed encoding passes through", "=?UTF-8?X?broken?=", "=?UTF-8?X?broken?="},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeHeader(tt.in))
		})
	}
}

func TestFormatAddress(t *testing.T) {
	withName := &imap.Address{
		PersonalName: "Alice Smith",
		MailboxName:  "alice",
		HostName:     "acme.com",
	}
	assert.Equal(t, "Alice Smith <alice@acme.com>", formatAddress(withName))

	bare := &imap.Address{
		MailboxName: "bob",
		HostName:    "initech.io",
	}
	assert.Equal(t, "bob@initech.io", formatAddress(bare))
}
