// ABOUTME: Chat session lifecycle: ID allocation, start and end records
// ABOUTME: Persists every exchange through the JSONL writer

package session

import "fmt"

// Session ties a conversation to its on-disk JSONL log.
type Session struct {
	ID     string
	Writer *Writer
}

// NewSession allocates an ID and opens the session log with a start
// record.
func NewSession(botName, persona string) (*Session, error) {
	id := NewID()
	w, err := NewWriter(id)
	if err != nil {
		return nil, fmt.Errorf("creating session writer: %w", err)
	}

	if err := w.WriteRecord(RecordSessionStart, SessionStartData{
		ID:      id,
		BotName: botName,
		Persona: persona,
	}); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing session start: %w", err)
	}

	return &Session{ID: id, Writer: w}, nil
}

// AddExchange persists one user/bot turn.
func (s *Session) AddExchange(data ExchangeData) error {
	return s.Writer.WriteRecord(RecordExchange, data)
}

// End writes the session_end record and closes the log.
func (s *Session) End(exchanges int) error {
	if err := s.Writer.WriteRecord(RecordSessionEnd, SessionEndData{Exchanges: exchanges}); err != nil {
		s.Writer.Close()
		return err
	}
	return s.Writer.Close()
}
