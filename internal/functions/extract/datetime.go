// Package extract recovers calendar dates and clock times from free-form
// subject text using an ordered table of regex matcher / layout pairs.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// matcher pairs a pattern with the layouts its match may parse under
type matcher struct {
	re      *regexp.Regexp
	layouts []string
}

// Date patterns, tried in order. The first pattern that both matches the
// text and parses under one of its layouts wins.
var dateMatchers = []matcher{
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`), []string{"1/2/2006"}},
	{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`), []string{"1-2-2006"}},
	{regexp.MustCompile(`\d{1,2} \w+ \d{4}`), []string{"2 January 2006", "2 Jan 2006"}},
}

// Time patterns, tried in order
var timeMatchers = []matcher{
	{regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)`), []string{"3:04 PM"}},
	{regexp.MustCompile(`(?i)\d{1,2}\s*(?:AM|PM)`), []string{"3 PM"}},
}

// MeetingDateTime attempts to recover a calendar date and a clock time from
// subject text. The two fields are extracted independently; either or both
// may be absent, and no failure is ever propagated.
func MeetingDateTime(subject string) (date *time.Time, clock *time.Time) {
	date = firstParse(subject, dateMatchers, normalizeDateToken)
	clock = firstParse(subject, timeMatchers, normalizeTimeToken)
	return date, clock
}

// firstParse tries each matcher in order and keeps the first value that both
// matches and parses. Later matchers are not tried once a value is obtained.
func firstParse(text string, matchers []matcher, normalize func(string) string) *time.Time {
	for _, m := range matchers {
		token := m.re.FindString(text)
		if token == "" {
			continue
		}
		token = normalize(token)
		for _, layout := range m.layouts {
			if t, err := time.Parse(layout, token); err == nil {
				return &t
			}
		}
	}
	return nil
}

// normalizeDateToken title-cases month names so "15 march 2025" parses under
// the month-name layouts
func normalizeDateToken(token string) string {
	fields := strings.Fields(token)
	for i, f := range fields {
		r := []rune(f)
		if len(r) > 0 && unicode.IsLetter(r[0]) {
			fields[i] = string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
		}
	}
	return strings.Join(fields, " ")
}

// normalizeTimeToken uppercases the meridiem for layout parsing
func normalizeTimeToken(token string) string {
	return strings.ToUpper(token)
}
