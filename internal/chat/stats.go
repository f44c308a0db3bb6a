// ABOUTME: Conversation statistics: lengths, sentiment trend, word and intent frequency
// ABOUTME: Report carries the numbers; String renders the terminal block

package chat

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
)

var wordRe = regexp.MustCompile(`\b\w+\b`)

// WordCount pairs a word with how often it appeared in user messages.
type WordCount struct {
	Word  string
	Count int
}

// Report summarizes a conversation so far.
type Report struct {
	Exchanges      int
	AvgUserChars   float64
	AvgBotChars    float64
	Facts          map[string]any
	AvgSentiment   float64 // rounded to two decimals
	TopWords       []WordCount
	MostUsedIntent string
	Duration       time.Duration
}

// Stats builds a report over the conversation recorded in st. Word and
// intent frequencies consider user messages only; intents are counted by
// re-classifying each message against the current context.
func (e *Engine) Stats(st *convo.State) Report {
	history := st.History()
	r := Report{
		Exchanges: len(history),
		Facts:     st.Facts(),
		Duration:  e.now().Sub(st.SessionStart()),
	}

	if len(history) > 0 {
		var userChars, botChars, scoreSum float64
		for _, h := range history {
			userChars += float64(utf8.RuneCountInString(h.User))
			botChars += float64(utf8.RuneCountInString(h.Bot))
			scoreSum += e.analyzer.Analyze(h.User).Score
		}
		n := float64(len(history))
		r.AvgUserChars = userChars / n
		r.AvgBotChars = botChars / n
		r.AvgSentiment = math.Round(scoreSum/n*100) / 100
	}

	r.TopWords = topWords(history, 3)
	r.MostUsedIntent = e.mostUsedIntent(history, st.Context())
	return r
}

// topWords counts every word across user messages and returns the limit
// most frequent, ties broken by first appearance.
func topWords(history []convo.Exchange, limit int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, h := range history {
		for _, word := range wordRe.FindAllString(strings.ToLower(h.User), -1) {
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	top := make([]WordCount, len(order))
	for i, word := range order {
		top[i] = WordCount{Word: word, Count: counts[word]}
	}
	return top
}

// mostUsedIntent re-classifies each user message and returns the intent
// matched most often, ties broken by first appearance. Empty when nothing
// ever matched.
func (e *Engine) mostUsedIntent(history []convo.Exchange, currentContext string) string {
	counts := make(map[string]int)
	var order []string
	for _, h := range history {
		cls := e.catalog.Classify(h.User, currentContext)
		if cls.Intent == nil {
			continue
		}
		name := cls.Intent.Name
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	if len(order) == 0 {
		return ""
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[0]
}

// String renders the report as the terminal statistics block.
func (r Report) String() string {
	rule := strings.Repeat("=", 40)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("📊 CONVERSATION STATISTICS\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Total exchanges: %d\n", r.Exchanges)

	if r.Exchanges > 0 {
		fmt.Fprintf(&b, "Avg user message length: %.0f chars\n", r.AvgUserChars)
		fmt.Fprintf(&b, "Avg bot response length: %.0f chars\n", r.AvgBotChars)
	}

	if len(r.Facts) > 0 {
		b.WriteString("\nKnown about you:\n")
		keys := make([]string, 0, len(r.Facts))
		for k := range r.Facts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  • %s: %v\n", k, r.Facts[k])
		}
	}

	if r.Exchanges > 0 {
		fmt.Fprintf(&b, "\nAverage Sentiment Score: %g\n", r.AvgSentiment)
	}

	if len(r.TopWords) > 0 {
		b.WriteString("\n🗣️ MOST COMMON WORDS\n")
		for _, wc := range r.TopWords {
			fmt.Fprintf(&b, "  • %s: %d times\n", wc.Word, wc.Count)
		}
	}

	if r.MostUsedIntent != "" {
		fmt.Fprintf(&b, "\n🎯 Most used intent: %s\n", r.MostUsedIntent)
	}

	h := int(r.Duration.Seconds()) / 3600
	m := (int(r.Duration.Seconds()) % 3600) / 60
	s := int(r.Duration.Seconds()) % 60
	fmt.Fprintf(&b, "⏱️ Conversation duration: %dh %dm %ds\n", h, m, s)
	fmt.Fprintf(&b, "%s", rule)

	return b.String()
}
