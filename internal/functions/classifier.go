// Package functions implements the semantic classification of inbound
// messages: the relevance gate, the AI-backed classifier with its
// deterministic fallback, and the defaulting rules applied to both.
package functions

import (
	"strings"
	"time"
	"unicode"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions/ai"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions/extract"
)

// relevanceKeywords gates which subjects are worth classifying at all
var relevanceKeywords = []string{
	"project", "meeting", "call", "proposal", "agenda",
	"update", "task", "action", "todo",
}

// meetingKeywords and taskKeywords re-derive the type when the
// classification service returns an invalid or missing one
var (
	meetingKeywords = []string{"meeting", "call", "zoom", "schedule", "calendar"}
	taskKeywords    = []string{"task", "action", "todo", "follow up"}
)

// maxTitleLen bounds stored titles and company names
const maxTitleLen = 255

// deadlineHour is the local hour of day deadlines are normalized to
const deadlineHour = 17

// IsRelevant reports whether a subject contains any of the work-tracking
// keywords. It is a pure, stateless predicate.
func IsRelevant(subject string) bool {
	lower := strings.ToLower(subject)
	for _, k := range relevanceKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Classification is the structured guess derived from one message
type Classification struct {
	Title    string
	Company  string
	Type     string
	Deadline time.Time

	// Set only when Type is meeting and the subject yielded them
	MeetingDate *time.Time
	MeetingTime *time.Time
}

// Classifier produces a Classification for one message. Implementations must
// not fail: any internal error resolves to the deterministic fallback.
type Classifier interface {
	Classify(subject, sender string) Classification
}

// EmailClassifier delegates to the chat-completions service and falls back to
// deterministic heuristics on any failure
type EmailClassifier struct {
	client *ai.Client
	now    func() time.Time
}

// NewEmailClassifier creates an EmailClassifier backed by the given client
func NewEmailClassifier(client *ai.Client) *EmailClassifier {
	return &EmailClassifier{client: client, now: time.Now}
}

// Classify implements Classifier
func (c *EmailClassifier) Classify(subject, sender string) Classification {
	parsed, err := c.client.ParseEmail(subject, sender)
	if err != nil {
		return Fallback(subject, sender, c.now())
	}
	return Validate(parsed, subject, sender, c.now())
}

// Validate applies the post-validation and defaulting rules to a service
// response. The service's own deadline suggestion is never trusted: the
// deadline is recomputed here and its time of day forced to 17:00.
func Validate(parsed *ai.ParsedEmail, subject, sender string, now time.Time) Classification {
	result := Classification{
		Title:   strings.TrimSpace(parsed.DetailedTaskTitle),
		Company: strings.TrimSpace(parsed.CompanyName),
		Type:    parsed.Type,
	}

	if result.Title == "" {
		result.Title = defaultTitle(subject)
	} else {
		result.Title = truncate(result.Title, maxTitleLen)
	}

	if result.Company == "" {
		result.Company = CompanyFromSender(sender)
	}

	if !isValidType(result.Type) {
		result.Type = DeriveType(subject)
	}

	if result.Type == models.UpdateTypeMeeting {
		date, clock := extract.MeetingDateTime(subject)
		result.MeetingDate = date
		result.MeetingTime = clock
		if date != nil {
			hour, minute := deadlineHour, 0
			if clock != nil {
				hour, minute = clock.Hour(), clock.Minute()
			}
			deadline := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
			result.Deadline = deadline
		} else {
			result.Deadline = now.AddDate(0, 0, 3)
		}
	} else {
		result.Deadline = now.AddDate(0, 0, 3)
	}

	// Deadlines always land at 17:00 local, whatever time was extracted
	result.Deadline = time.Date(
		result.Deadline.Year(), result.Deadline.Month(), result.Deadline.Day(),
		deadlineHour, 0, 0, 0, result.Deadline.Location(),
	)

	return result
}

// Fallback is the deterministic, network-free classification used whenever
// the service is unreachable or its output unusable. The type is fixed to
// email and the deadline keeps its natural time of day.
func Fallback(subject, sender string, now time.Time) Classification {
	return Classification{
		Title:    defaultTitle(subject),
		Company:  CompanyFromSender(sender),
		Type:     models.UpdateTypeEmail,
		Deadline: now.AddDate(0, 0, 3),
	}
}

// DeriveType classifies a subject by keywords alone
func DeriveType(subject string) string {
	lower := strings.ToLower(subject)
	for _, k := range meetingKeywords {
		if strings.Contains(lower, k) {
			return models.UpdateTypeMeeting
		}
	}
	for _, k := range taskKeywords {
		if strings.Contains(lower, k) {
			return models.UpdateTypeTask
		}
	}
	return models.UpdateTypeEmail
}

// CompanyFromSender derives a company name from the sender's domain: the
// first label of the domain, capitalized. Senders without an "@" map to the
// Unknown sentinel.
func CompanyFromSender(sender string) string {
	at := strings.Index(sender, "@")
	if at == -1 {
		return models.UnknownCompany
	}
	domain := sender[at+1:]
	if dot := strings.Index(domain, "."); dot != -1 {
		domain = domain[:dot]
	}
	domain = strings.TrimRight(domain, ">")
	if domain == "" {
		return models.UnknownCompany
	}
	return capitalize(domain)
}

// isValidType reports whether the service returned one of the three types
// the pipeline accepts. "other" exists in storage but is never produced here.
func isValidType(t string) bool {
	switch t {
	case models.UpdateTypeEmail, models.UpdateTypeMeeting, models.UpdateTypeTask:
		return true
	}
	return false
}

func defaultTitle(subject string) string {
	if subject == "" {
		return "Untitled"
	}
	return truncate(subject, maxTitleLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
