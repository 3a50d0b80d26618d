// Command test_imap is a standalone connectivity check for a mailbox.
// It dials the configured IMAP server with credentials from flags, lists
// today's messages and prints their headers.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/mailbox"
)

func main() {
	host := flag.String("host", "imap.gmail.com", "IMAP server host")
	port := flag.Int("port", 993, "IMAP server port")
	address := flag.String("address", "", "mailbox address")
	password := flag.String("password", "", "mailbox app password")
	flag.Parse()

	if *address == "" || *password == "" {
		log.Fatal("both -address and -password are required")
	}

	log.Printf("Connecting to %s:%d...", *host, *port)
	dialer := mailbox.NewIMAPDialer(*host, *port)
	session, err := dialer.Dial(mailbox.Credentials{
		Address:  *address,
		Password: *password,
	})
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer session.Close()
	log.Println("Connected and authenticated.")

	ids, err := session.SearchSince(time.Now())
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	log.Printf("Found %d messages since today", len(ids))

	for i := len(ids) - 1; i >= 0; i-- {
		msg, err := session.FetchHeader(ids[i])
		if err != nil {
			log.Printf("Fetch of message %s failed: %v", ids[i], err)
			continue
		}
		log.Printf("[%s] %s | from %s | %s",
			msg.ID, msg.Subject, msg.From, msg.Date.Format("2006-01-02 15:04"))
	}
}
