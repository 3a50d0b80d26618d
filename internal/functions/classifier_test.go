package functions

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions/ai"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"Project kickoff next week", true},
		{"MEETING: quarterly review", true},
		{"Your agenda for tomorrow", true},
		{"Re: action items from yesterday", true},
		{"todo before friday", true},
		{"50% off all shoes this weekend", false},
		{"Your package has shipped", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRelevant(tt.subject), "subject %q", tt.subject)
	}
}

func TestCompanyFromSender(t *testing.T) {
	tests := []struct {
		sender string
		want   string
	}{
		{"alice@acme.com", "Acme"},
		{"Bob Smith <bob@initech.io>", "Initech"},
		{"carol@SUB.example.org", "Sub"},
		{"no-at-sign", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompanyFromSender(tt.sender), "sender %q", tt.sender)
	}
}

func TestDeriveType(t *testing.T) {
	assert.Equal(t, models.UpdateTypeMeeting, DeriveType("Zoom call at 3 PM"))
	assert.Equal(t, models.UpdateTypeMeeting, DeriveType("please add to my calendar"))
	assert.Equal(t, models.UpdateTypeTask, DeriveType("follow up on the report"))
	assert.Equal(t, models.UpdateTypeEmail, DeriveType("quarterly numbers"))

	// meeting keywords take precedence over task keywords
	assert.Equal(t, models.UpdateTypeMeeting, DeriveType("schedule a task review call"))
}

func TestValidateMeetingDeadline(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local)

	parsed := &ai.ParsedEmail{
		DetailedTaskTitle: "Design review",
		CompanyName:       "Acme",
		Type:              models.UpdateTypeMeeting,
	}

	t.Run("extracted date lands at 17:00 regardless of extracted time", func(t *testing.T) {
		c := Validate(parsed, "Design review 6/20/2025 at 2:30 PM", "alice@acme.com", now)
		assert.Equal(t, models.UpdateTypeMeeting, c.Type)
		if assert.NotNil(t, c.MeetingDate) {
			assert.Equal(t, "2025-06-20", c.MeetingDate.Format("2006-01-02"))
		}
		if assert.NotNil(t, c.MeetingTime) {
			assert.Equal(t, "14:30", c.MeetingTime.Format("15:04"))
		}
		assert.Equal(t, "2025-06-20 17:00", c.Deadline.Format("2006-01-02 15:04"))
	})

	t.Run("no extracted date falls back to three days out", func(t *testing.T) {
		c := Validate(parsed, "Design review sometime", "alice@acme.com", now)
		assert.Nil(t, c.MeetingDate)
		assert.Equal(t, "2025-06-13 17:00", c.Deadline.Format("2006-01-02 15:04"))
	})
}

func TestFallback(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local)
	c := Fallback("Budget meeting thursday", "bob@initech.io", now)

	assert.Equal(t, models.UpdateTypeEmail, c.Type)
	assert.Equal(t, "Budget meeting thursday", c.Title)
	assert.Equal(t, "Initech", c.Company)
	// The fallback deadline keeps the time of day instead of forcing 17:00
	assert.Equal(t, "2025-06-13 09:30", c.Deadline.Format("2006-01-02 15:04"))
}

func TestProperty_ClassificationValidity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	subjectGen := gen.AnyString()
	senderGen := gen.SliceOfN(8, gen.AlphaLowerChar()).Map(func(chars []rune) string {
		return string(chars) + "@example.com"
	})
	typeGen := gen.OneConstOf("meeting", "task", "email", "banana", "", "MEETING")

	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local)

	// The validated type is always one the pipeline accepts
	properties.Property("validated_type_is_always_accepted", prop.ForAll(
		func(subject, sender, rawType string) bool {
			c := Validate(&ai.ParsedEmail{Type: rawType}, subject, sender, now)
			switch c.Type {
			case models.UpdateTypeMeeting, models.UpdateTypeTask, models.UpdateTypeEmail:
				return true
			}
			return false
		},
		subjectGen, senderGen, typeGen,
	))

	// Validated deadlines always land at 17:00 local
	properties.Property("validated_deadline_at_17", prop.ForAll(
		func(subject, sender, rawType string) bool {
			c := Validate(&ai.ParsedEmail{Type: rawType}, subject, sender, now)
			return c.Deadline.Hour() == 17 && c.Deadline.Minute() == 0
		},
		subjectGen, senderGen, typeGen,
	))

	// Titles are never empty and never exceed the storage bound
	properties.Property("title_bounded_and_nonempty", prop.ForAll(
		func(subject, sender string) bool {
			c := Validate(&ai.ParsedEmail{}, subject, sender, now)
			runes := []rune(c.Title)
			return len(runes) > 0 && len(runes) <= 255
		},
		subjectGen, senderGen,
	))

	// Company derivation never yields an empty string
	properties.Property("company_never_empty", prop.ForAll(
		func(sender string) bool {
			return CompanyFromSender(sender) != ""
		},
		gen.AnyString(),
	))

	// Fallback is fixed to the email type and never forces 17:00
	properties.Property("fallback_type_is_email", prop.ForAll(
		func(subject, sender string) bool {
			c := Fallback(subject, sender, now)
			return c.Type == models.UpdateTypeEmail &&
				c.Deadline.Hour() == now.Hour() &&
				c.MeetingDate == nil && c.MeetingTime == nil
		},
		subjectGen, senderGen,
	))

	properties.TestingRun(t)
}
