package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

func newTestLogger(t *testing.T, path string) *Logger {
	t.Helper()
	nop := zerolog.Nop()
	return NewLogger(path, &nop)
}

func TestAppend_CreatesDirAndWritesOneLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "requests.jsonl")
	l := newTestLogger(t, path)

	l.Append(models.AuditRecord{RequestID: "req-1", Query: "docker daemon", YQL: "select ..."})
	l.Append(models.AuditRecord{RequestID: "req-2", Query: "chmod"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	defer f.Close()

	var records []models.AuditRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec models.AuditRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		records = append(records, rec)
	}

	if len(records) != 2 {
		t.Fatalf("records: %d, want 2", len(records))
	}
	if records[0].RequestID != "req-1" || records[1].RequestID != "req-2" {
		t.Errorf("append order broken: %+v", records)
	}
}

func TestAppend_ConcurrentRecordsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.jsonl")
	l := newTestLogger(t, path)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(models.AuditRecord{
				RequestID: fmt.Sprintf("req-%d", i),
				Query:     "concurrent append",
			})
		}(i)
	}
	wg.Wait()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	seen := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec models.AuditRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("interleaved or corrupt line: %q", scanner.Text())
		}
		seen[rec.RequestID] = true
	}

	if len(seen) != writers {
		t.Errorf("distinct records: %d, want %d", len(seen), writers)
	}
}

func TestAppend_FailureDoesNotPanic(t *testing.T) {
	// Point the log at a path whose parent is a file, so the mkdir fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := newTestLogger(t, filepath.Join(blocker, "requests.jsonl"))
	l.Append(models.AuditRecord{RequestID: "req-1"})
}
