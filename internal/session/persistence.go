// ABOUTME: JSONL session persistence with append-only writes
// ABOUTME: Reads line-by-line with bufio.Scanner; crash-safe via O_APPEND

package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mauromedda/pi-chat-agent-go/internal/config"
)

// RecordType identifies the type of JSONL record.
type RecordType string

const (
	RecordSessionStart RecordType = "session_start"
	RecordExchange     RecordType = "exchange"
	RecordSessionEnd   RecordType = "session_end"
)

// Record is the envelope for all JSONL entries.
type Record struct {
	Version int             `json:"v"`
	Type    RecordType      `json:"type"`
	TS      string          `json:"ts"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SessionStartData holds session_start metadata.
type SessionStartData struct {
	ID      string `json:"id"`
	BotName string `json:"bot_name"`
	Persona string `json:"persona,omitempty"`
}

// ExchangeData holds one user/bot turn.
type ExchangeData struct {
	User           string  `json:"user"`
	Bot            string  `json:"bot"`
	Intent         string  `json:"intent,omitempty"`
	Score          float64 `json:"score,omitempty"`
	Sentiment      string  `json:"sentiment,omitempty"`
	SentimentScore float64 `json:"sentiment_score,omitempty"`
}

// SessionEndData holds session_end metadata.
type SessionEndData struct {
	Exchanges int `json:"exchanges"`
}

// NewID returns a fresh session identifier.
func NewID() string {
	return "sess_" + uuid.NewString()[:8]
}

// Writer appends records to a session JSONL file.
type Writer struct {
	file *os.File
}

// NewWriter creates a Writer for the given session ID.
func NewWriter(sessionID string) (*Writer, error) {
	dir := config.SessionsDir()
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating sessions dir: %w", err)
	}

	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}

	return &Writer{file: f}, nil
}

// WriteRecord appends a record to the session file.
func (w *Writer) WriteRecord(recType RecordType, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling record data: %w", err)
	}

	rec := Record{
		Version: 1,
		Type:    recType,
		TS:      time.Now().UTC().Format(time.RFC3339),
		Data:    dataBytes,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Close closes the session file.
func (w *Writer) Close() error {
	return w.file.Close()
}

// ReadRecords reads all records from a session file, skipping malformed
// lines.
func ReadRecords(sessionID string) ([]Record, error) {
	path := filepath.Join(config.SessionsDir(), sessionID+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session %s: %w", sessionID, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue // Skip malformed lines
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scanning session %s: %w", sessionID, err)
	}
	return records, nil
}

// Info describes a stored session for listings.
type Info struct {
	ID        string
	BotName   string
	Persona   string
	StartedAt string
}

// ListSessions scans the sessions directory and returns one Info per
// session log, newest first.
func ListSessions() ([]Info, error) {
	dir := config.SessionsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions dir: %w", err)
	}

	var sessions []Info
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}

		info, err := readFirstLine(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		sessions = append(sessions, info)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt > sessions[j].StartedAt
	})
	return sessions, nil
}

func readFirstLine(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return Info{}, fmt.Errorf("empty session file")
	}

	var rec Record
	if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
		return Info{}, fmt.Errorf("parsing first record: %w", err)
	}
	if rec.Type != RecordSessionStart {
		return Info{}, fmt.Errorf("unexpected first record type %q", rec.Type)
	}

	var start SessionStartData
	if err := json.Unmarshal(rec.Data, &start); err != nil {
		return Info{}, fmt.Errorf("parsing session start: %w", err)
	}
	return Info{
		ID:        start.ID,
		BotName:   start.BotName,
		Persona:   start.Persona,
		StartedAt: rec.TS,
	}, nil
}
