// Package mailbox provides the IMAP client used by the ingestion pipeline.
// Sessions are inbox-scoped: dialing connects, authenticates and selects
// INBOX, and every exit path must go through Close.
package mailbox

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	id "github.com/emersion/go-imap-id"
	_ "github.com/emersion/go-message/charset"
)

var (
	// ErrConnectionFailed indicates the IMAP connection could not be established
	ErrConnectionFailed = errors.New("mailbox connection failed")
	// ErrAuthFailed indicates IMAP authentication failed
	ErrAuthFailed = errors.New("mailbox authentication failed")
	// ErrSearchFailed indicates the mailbox search failed
	ErrSearchFailed = errors.New("mailbox search failed")
	// ErrFetchFailed indicates a single message fetch failed
	ErrFetchFailed = errors.New("message fetch failed")
)

const (
	dialTimeout    = 10 * time.Second
	commandTimeout = 2 * time.Minute
)

// Credentials identify one mailbox. The secret is an app password.
type Credentials struct {
	Address  string
	Password string
}

// Message is one fetched message header. It exists only for the duration of
// an ingestion run and is never persisted directly.
type Message struct {
	ID      string
	Subject string
	From    string
	Date    time.Time
}

// Session is an authenticated, inbox-selected mailbox session
type Session interface {
	// SearchSince returns identifiers of messages whose arrival date is
	// on or after the given calendar date, in the server's order.
	SearchSince(since time.Time) ([]string, error)
	// FetchHeader fetches the header section of a single message
	FetchHeader(id string) (*Message, error)
	// Close terminates the remote session
	Close() error
}

// Dialer opens mailbox sessions
type Dialer interface {
	Dial(creds Credentials) (Session, error)
}

// IMAPDialer dials a real IMAP server over TLS
type IMAPDialer struct {
	Host string
	Port int
}

// NewIMAPDialer creates an IMAPDialer for the given server
func NewIMAPDialer(host string, port int) *IMAPDialer {
	return &IMAPDialer{Host: host, Port: port}
}

// Dial connects, authenticates and selects INBOX
func (d *IMAPDialer) Dial(creds Credentials) (Session, error) {
	addr := fmt.Sprintf("%s:%d", d.Host, d.Port)
	dialer := &net.Dialer{Timeout: dialTimeout}

	tlsConfig := &tls.Config{ServerName: d.Host}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	c, err := client.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	c.Timeout = commandTimeout

	// Some servers require client identification before login
	if ok, _ := c.Support("ID"); ok {
		idClient := id.NewClient(c)
		_, _ = idClient.ID(id.ID{
			id.FieldName:    "Role Juggler",
			id.FieldVersion: "1.0.0",
		})
	}

	if err := c.Login(creds.Address, creds.Password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	if _, err := c.Select("INBOX", true); err != nil {
		c.Logout()
		return nil, fmt.Errorf("%w: failed to select INBOX: %v", ErrConnectionFailed, err)
	}

	return &imapSession{c: c}, nil
}

// imapSession wraps a go-imap client with INBOX selected
type imapSession struct {
	c *client.Client
}

func (s *imapSession) SearchSince(since time.Time) ([]string, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)

	seqNums, err := s.c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	ids := make([]string, 0, len(seqNums))
	for _, n := range seqNums {
		ids = append(ids, strconv.FormatUint(uint64(n), 10))
	}
	return ids, nil
}

func (s *imapSession) FetchHeader(msgID string) (*Message, error) {
	seqNum, err := strconv.ParseUint(msgID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid message id %q", ErrFetchFailed, msgID)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uint32(seqNum))

	items := []imap.FetchItem{imap.FetchEnvelope}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.c.Fetch(seqSet, items, messages)
	}()

	var fetched *imap.Message
	for msg := range messages {
		if msg != nil {
			fetched = msg
		}
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if fetched == nil || fetched.Envelope == nil {
		return nil, fmt.Errorf("%w: no envelope for message %s", ErrFetchFailed, msgID)
	}

	env := fetched.Envelope
	msg := &Message{
		ID:      msgID,
		Subject: DecodeHeader(env.Subject),
		Date:    env.Date,
	}
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}
	if len(env.From) > 0 {
		msg.From = formatAddress(env.From[0])
	}

	return msg, nil
}

func (s *imapSession) Close() error {
	return s.c.Logout()
}

// DecodeHeader decodes MIME encoded-word header text to plain text.
// Undecodable byte sequences are passed through rather than failing.
func DecodeHeader(s string) string {
	dec := &mime.WordDecoder{
		CharsetReader: func(charset string, input io.Reader) (io.Reader, error) {
			// Unknown charsets are read as-is instead of failing the message
			return input, nil
		},
	}
	decoded, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}

// formatAddress formats an IMAP address to a string
func formatAddress(addr *imap.Address) string {
	if addr.PersonalName != "" {
		return fmt.Sprintf("%s <%s@%s>", DecodeHeader(addr.PersonalName), addr.MailboxName, addr.HostName)
	}
	return fmt.Sprintf("%s@%s", addr.MailboxName, addr.HostName)
}
