package extract

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestMeetingDateTime(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		wantDate  string // "2006-01-02", empty for nil
		wantClock string // "15:04", empty for nil
	}{
		{
			name:      "slash date with time",
			subject:   "Project meeting on 3/15/2025 at 2:30 PM",
			wantDate:  "2025-03-15",
			wantClock: "14:30",
		},
		{
			name:     "dash date",
			subject:  "Call scheduled 12-01-2025",
			wantDate: "2025-12-01",
		},
		{
			name:     "full month name",
			subject:  "Proposal review 5 March 2025",
			wantDate: "2025-03-05",
		},
		{
			name:     "abbreviated month name",
			subject:  "Agenda for 5 Mar 2025",
			wantDate: "2025-03-05",
		},
		{
			name:     "lowercase month name",
			subject:  "sync on 15 march 2025",
			wantDate: "2025-03-15",
		},
		{
			name:      "hour only time",
			subject:   "Quick call at 9 AM tomorrow",
			wantClock: "09:00",
		},
		{
			name:      "lowercase meridiem",
			subject:   "standup at 10:15 am",
			wantClock: "10:15",
		},
		{
			name:     "slash date wins over month name",
			subject:  "meeting 3/15/2025 or 20 March 2025",
			wantDate: "2025-03-15",
		},
		{
			name:    "no date or time",
			subject: "Weekly project update",
		},
		{
			name:    "empty subject",
			subject: "",
		},
		{
			name:    "out of range date does not parse",
			subject: "review on 31/31/2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock := MeetingDateTime(tt.subject)

			if tt.wantDate == "" {
				assert.Nil(t, date)
			} else {
				if assert.NotNil(t, date) {
					assert.Equal(t, tt.wantDate, date.Format("2006-01-02"))
				}
			}

			if tt.wantClock == "" {
				assert.Nil(t, clock)
			} else {
				if assert.NotNil(t, clock) {
					assert.Equal(t, tt.wantClock, clock.Format("15:04"))
				}
			}
		})
	}
}

func TestProperty_ExtractionTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	subjectGen := gen.AnyString()

	// Extraction never fails, whatever the subject contains
	properties.Property("extraction_is_total", prop.ForAll(
		func(subject string) bool {
			date, clock := MeetingDateTime(subject)
			_ = date
			_ = clock
			return true
		},
		subjectGen,
	))

	// Same subject always yields the same result
	properties.Property("extraction_is_deterministic", prop.ForAll(
		func(subject string) bool {
			d1, c1 := MeetingDateTime(subject)
			d2, c2 := MeetingDateTime(subject)
			return equalTimePtr(d1, d2) && equalTimePtr(c1, c2)
		},
		subjectGen,
	))

	// A recognizable date embedded anywhere in the subject is found
	properties.Property("embedded_slash_date_is_found", prop.ForAll(
		func(prefix string, day int) bool {
			date, _ := MeetingDateTime(prefix + " meeting 6/" + strconv.Itoa(day) + "/2025")
			return date != nil && date.Month() == time.June && date.Day() == day
		},
		gen.SliceOfN(10, gen.AlphaChar()).Map(func(chars []rune) string {
			return string(chars)
		}),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
