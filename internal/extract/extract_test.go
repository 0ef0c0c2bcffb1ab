package extract

import (
	"strings"
	"testing"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     bool
	}{
		{"pdf extension", "report.PDF", []byte("whatever"), true},
		{"pdf magic without extension", "upload", []byte("%PDF-1.7 rest"), true},
		{"plain text", "notes.txt", []byte("just text"), false},
		{"empty", "", nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsPDF(test.filename, test.data); got != test.want {
				t.Errorf("IsPDF: %v, want %v", got, test.want)
			}
		})
	}
}

func TestText_PlainTextPassesThrough(t *testing.T) {
	got, err := Text("notes.txt", []byte("docker daemon is not running"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "docker daemon is not running" {
		t.Errorf("text: %q", got)
	}
}

func TestText_InvalidBytesAreSubstitutedNotFatal(t *testing.T) {
	data := []byte{'o', 'k', 0xff, 0xfe, ' ', 't', 'a', 'i', 'l'}

	got, err := Text("notes.txt", data, "")
	if err != nil {
		t.Fatalf("invalid byte sequences must not fail decoding: %v", err)
	}
	if !strings.Contains(got, "ok") || !strings.Contains(got, "tail") {
		t.Errorf("valid content lost: %q", got)
	}
	if !strings.Contains(got, "�") {
		t.Errorf("expected substitution marker in %q", got)
	}
}

func TestText_TruncatedPDFIsDescriptiveError(t *testing.T) {
	_, err := Text("broken.pdf", []byte("%PDF-1.4 truncated"), "")
	if err == nil {
		t.Fatal("expected an error for a truncated PDF, not a panic or empty success")
	}
}
