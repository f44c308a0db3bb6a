// ABOUTME: Placeholder substitution for response templates.
// ABOUTME: Replaces {bot_name}, {user_name}, clock values, and {user_birthday} literally.

package template

import (
	"strings"
	"time"
)

// Substitution defaults and clock layouts.
const (
	defaultUserName = "friend"
	defaultBirthday = "unknown"
	timeLayout      = "03:04 PM"
	dateLayout      = "Monday, January 02, 2006"
)

// FactSource provides remembered user facts for substitution. The
// conversation state satisfies this.
type FactSource interface {
	Name() (string, bool)
	Birthday() (string, bool)
}

// Filler substitutes {placeholder} variables in response templates.
// Unknown placeholders are left verbatim.
type Filler struct {
	BotName string
	Now     func() time.Time // nil means time.Now
}

// Fill replaces each known placeholder in s, in a fixed order, with plain
// string substitution. No escaping or re-scanning of substituted values
// takes place beyond later placeholders in the order.
func (f *Filler) Fill(s string, facts FactSource) string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	t := now()

	userName := defaultUserName
	birthday := defaultBirthday
	if facts != nil {
		if n, ok := facts.Name(); ok {
			userName = n
		}
		if b, ok := facts.Birthday(); ok {
			birthday = b
		}
	}

	s = strings.ReplaceAll(s, "{bot_name}", f.BotName)
	s = strings.ReplaceAll(s, "{user_name}", userName)
	s = strings.ReplaceAll(s, "{current_time}", t.Format(timeLayout))
	s = strings.ReplaceAll(s, "{current_date}", t.Format(dateLayout))
	s = strings.ReplaceAll(s, "{user_birthday}", birthday)
	return s
}
