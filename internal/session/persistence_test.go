// ABOUTME: Tests for JSONL session persistence
// ABOUTME: Uses temp directories for isolated read/write testing

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	t.Setenv("PICHAT_DIR", t.TempDir())

	s, err := NewSession("Pi", "default")
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if !strings.HasPrefix(s.ID, "sess_") {
		t.Errorf("ID = %q, want sess_ prefix", s.ID)
	}

	if err := s.AddExchange(ExchangeData{
		User:      "hello",
		Bot:       "Hi there!",
		Intent:    "greeting",
		Score:     4.5,
		Sentiment: "neutral",
	}); err != nil {
		t.Fatalf("AddExchange error: %v", err)
	}
	if err := s.End(1); err != nil {
		t.Fatalf("End error: %v", err)
	}

	records, err := ReadRecords(s.ID)
	if err != nil {
		t.Fatalf("ReadRecords error: %v", err)
	}
	if got, want := len(records), 3; got != want {
		t.Fatalf("len(records) = %d, want %d", got, want)
	}

	wantTypes := []RecordType{RecordSessionStart, RecordExchange, RecordSessionEnd}
	for i, rec := range records {
		if rec.Type != wantTypes[i] {
			t.Errorf("records[%d].Type = %q, want %q", i, rec.Type, wantTypes[i])
		}
		if rec.Version != 1 {
			t.Errorf("records[%d].Version = %d, want 1", i, rec.Version)
		}
		if _, err := time.Parse(time.RFC3339, rec.TS); err != nil {
			t.Errorf("records[%d].TS = %q not RFC3339: %v", i, rec.TS, err)
		}
	}

	var start SessionStartData
	if err := json.Unmarshal(records[0].Data, &start); err != nil {
		t.Fatalf("parsing start data: %v", err)
	}
	if start.ID != s.ID || start.BotName != "Pi" || start.Persona != "default" {
		t.Errorf("start = %+v, want ID %q, Pi, default", start, s.ID)
	}

	var ex ExchangeData
	if err := json.Unmarshal(records[1].Data, &ex); err != nil {
		t.Fatalf("parsing exchange data: %v", err)
	}
	if ex.User != "hello" || ex.Bot != "Hi there!" || ex.Intent != "greeting" {
		t.Errorf("exchange = %+v", ex)
	}
}

func TestReadRecordsSkipsMalformedLines(t *testing.T) {
	t.Setenv("PICHAT_DIR", t.TempDir())

	dir := filepath.Join(os.Getenv("PICHAT_DIR"), "sessions")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	content := `{"v":1,"type":"session_start","ts":"2025-01-01T00:00:00Z","data":{"id":"sess_aaaa0000","bot_name":"Pi"}}
this line is not JSON
{"v":1,"type":"exchange","ts":"2025-01-01T00:01:00Z","data":{"user":"hi","bot":"Hello!"}}
`
	if err := os.WriteFile(filepath.Join(dir, "sess_aaaa0000.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords("sess_aaaa0000")
	if err != nil {
		t.Fatalf("ReadRecords error: %v", err)
	}
	if got, want := len(records), 2; got != want {
		t.Errorf("len(records) = %d, want %d", got, want)
	}
}

func TestReadRecordsMissingSession(t *testing.T) {
	t.Setenv("PICHAT_DIR", t.TempDir())

	if _, err := ReadRecords("sess_missing0"); err == nil {
		t.Fatal("ReadRecords of missing session should error")
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	t.Setenv("PICHAT_DIR", t.TempDir())

	dir := filepath.Join(os.Getenv("PICHAT_DIR"), "sessions")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"sess_old00000.jsonl": `{"v":1,"type":"session_start","ts":"2025-01-01T00:00:00Z","data":{"id":"sess_old00000","bot_name":"Pi"}}` + "\n",
		"sess_new00000.jsonl": `{"v":1,"type":"session_start","ts":"2025-02-01T00:00:00Z","data":{"id":"sess_new00000","bot_name":"Pi","persona":"cheery"}}` + "\n",
		"notes.txt":           "not a session\n",
		"empty.jsonl":         "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := ListSessions()
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if got, want := len(sessions), 2; got != want {
		t.Fatalf("len(sessions) = %d, want %d", got, want)
	}
	if got, want := sessions[0].ID, "sess_new00000"; got != want {
		t.Errorf("sessions[0].ID = %q, want %q", got, want)
	}
	if got, want := sessions[0].Persona, "cheery"; got != want {
		t.Errorf("sessions[0].Persona = %q, want %q", got, want)
	}
	if got, want := sessions[1].ID, "sess_old00000"; got != want {
		t.Errorf("sessions[1].ID = %q, want %q", got, want)
	}
}

func TestListSessionsMissingDir(t *testing.T) {
	t.Setenv("PICHAT_DIR", filepath.Join(t.TempDir(), "nope"))

	sessions, err := ListSessions()
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if sessions != nil {
		t.Errorf("sessions = %v, want nil", sessions)
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	id := NewID()
	if !strings.HasPrefix(id, "sess_") {
		t.Errorf("NewID() = %q, want sess_ prefix", id)
	}
	if got, want := len(id), len("sess_")+8; got != want {
		t.Errorf("len(NewID()) = %d, want %d", got, want)
	}
	if id == NewID() {
		t.Error("NewID() returned the same ID twice")
	}
}
