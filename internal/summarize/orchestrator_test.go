// internal/summarize/orchestrator_test.go
package summarize

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arun477/dirtree/internal/walker"
)

// scriptedSummarizer answers per relative path and records call order.
type scriptedSummarizer struct {
	fail  map[string]bool
	calls []string
}

func (s *scriptedSummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	s.calls = append(s.calls, req.Path)
	if s.fail[req.Path] {
		return "", errors.New("boom")
	}
	return "summary of " + req.Path, nil
}

func makeCandidates(t *testing.T, names ...string) []walker.Entry {
	t.Helper()
	tmpDir := t.TempDir()
	entries := make([]walker.Entry, len(names))
	for i, name := range names {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content of "+name), 0644); err != nil {
			t.Fatal(err)
		}
		entries[i] = walker.Entry{Path: path, RelPath: name}
	}
	return entries
}

func TestOrchestrator_SummarizesAllCandidates(t *testing.T) {
	candidates := makeCandidates(t, "a.txt", "sub/c.md")
	s := &scriptedSummarizer{}
	o := &Orchestrator{Summarizer: s, Project: "p", Model: "m", Log: &bytes.Buffer{}}

	got := o.Run(context.Background(), candidates)

	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got["a.txt"] != "summary of a.txt" || got["sub/c.md"] != "summary of sub/c.md" {
		t.Errorf("summaries = %v", got)
	}
	if strings.Join(s.calls, ",") != "a.txt,sub/c.md" {
		t.Errorf("call order = %v, want sequential input order", s.calls)
	}
}

func TestOrchestrator_CapAppliedBeforeLoop(t *testing.T) {
	candidates := makeCandidates(t, "a.txt", "b.txt")
	s := &scriptedSummarizer{}
	var log bytes.Buffer
	o := &Orchestrator{Summarizer: s, MaxFiles: 1, Log: &log}

	got := o.Run(context.Background(), candidates)

	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1", len(got))
	}
	if _, ok := got["a.txt"]; !ok {
		t.Error("first candidate by order should be the one summarized")
	}
	if len(s.calls) != 1 {
		t.Errorf("summarizer called %d times, want 1", len(s.calls))
	}
	if !strings.Contains(log.String(), "Limiting to 1 files") {
		t.Errorf("log missing truncation notice: %q", log.String())
	}
}

func TestOrchestrator_FailureDoesNotContaminateBatch(t *testing.T) {
	candidates := makeCandidates(t, "a.txt", "bad.txt", "c.txt")
	s := &scriptedSummarizer{fail: map[string]bool{"bad.txt": true}}
	var log bytes.Buffer
	o := &Orchestrator{Summarizer: s, Log: &log}

	got := o.Run(context.Background(), candidates)

	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if _, ok := got["bad.txt"]; ok {
		t.Error("failed candidate must be omitted")
	}
	if got["c.txt"] != "summary of c.txt" {
		t.Error("candidates after a failure must still be summarized")
	}
	if !strings.Contains(log.String(), "bad.txt") {
		t.Errorf("failure should be logged: %q", log.String())
	}
}

func TestOrchestrator_UnreadableFileSkipped(t *testing.T) {
	candidates := makeCandidates(t, "a.txt")
	candidates = append(candidates, walker.Entry{
		Path:    filepath.Join(t.TempDir(), "vanished.txt"),
		RelPath: "vanished.txt",
	})

	s := &scriptedSummarizer{}
	var log bytes.Buffer
	o := &Orchestrator{Summarizer: s, Log: &log}

	got := o.Run(context.Background(), candidates)

	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1", len(got))
	}
	if len(s.calls) != 1 {
		t.Errorf("summarizer should not be called for unreadable files; calls = %v", s.calls)
	}
	if !strings.Contains(log.String(), "vanished.txt") {
		t.Errorf("read failure should be logged: %q", log.String())
	}
}

func TestOrchestrator_CancelledContextStopsBatch(t *testing.T) {
	candidates := makeCandidates(t, "a.txt", "b.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &scriptedSummarizer{}
	o := &Orchestrator{Summarizer: s, Log: &bytes.Buffer{}}

	got := o.Run(ctx, candidates)
	if len(got) != 0 {
		t.Errorf("cancelled context should stop before any work; got %v", got)
	}
}
