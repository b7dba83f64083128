package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/comments/internal/comment"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
		{"multibyte", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one line"); got != "one line" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("first\nsecond"); got != "first ..." {
		t.Errorf("firstLine = %q, want %q", got, "first ...")
	}
}

func TestPrintCommentTable(t *testing.T) {
	var buf bytes.Buffer
	comments := []*comment.Comment{
		{ID: "c1", Text: "Great post", Author: "ann", CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: "c2", Text: "line one\nline two", Author: "bob", CreatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
	}

	if err := printCommentTable(&buf, comments); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID", "AUTHOR", "c1", "ann", "2024-03-01 09:30", "Great post", "line one ...", "Total: 2 comments"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "line two") {
		t.Error("expected only the first line of multi-line text")
	}
}

func TestPrintCommentTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printCommentTable(&buf, nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No comments." {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, comment.Comment{ID: "c1", Text: "hi", Author: "a"}); err != nil {
		t.Fatalf("print: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["id"] != "c1" || got["text"] != "hi" || got["author"] != "a" {
		t.Errorf("got %v", got)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}
