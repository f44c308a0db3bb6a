// ABOUTME: Conversation transcript export as a single indented JSON file
// ABOUTME: Captures session bounds, bot name, user facts, and full history

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mauromedda/pi-chat-agent-go/internal/convo"
)

// Transcript is the exported form of a finished (or running) conversation.
type Transcript struct {
	SessionStart string           `json:"session_start"`
	SessionEnd   string           `json:"session_end"`
	BotName      string           `json:"bot_name"`
	UserData     map[string]any   `json:"user_data"`
	History      []convo.Exchange `json:"history"`
}

// SaveTranscript writes the conversation in st to path as indented JSON.
// A nil now uses time.Now.
func SaveTranscript(path, botName string, st *convo.State, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	t := Transcript{
		SessionStart: st.SessionStart().Format(time.RFC3339),
		SessionEnd:   now().Format(time.RFC3339),
		BotName:      botName,
		UserData:     st.Facts(),
		History:      st.History(),
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// LoadTranscript reads a transcript written by SaveTranscript.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing transcript %s: %w", path, err)
	}
	return &t, nil
}
