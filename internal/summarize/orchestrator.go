// internal/summarize/orchestrator.go
package summarize

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arun477/dirtree/internal/walker"
)

// Orchestrator runs the summarization batch: one remote call per candidate
// file, strictly in sequence, with a fixed pause after every attempt. A
// failed candidate is logged and dropped; it never aborts the batch.
type Orchestrator struct {
	Summarizer Summarizer
	Project    string
	Model      string
	Delay      time.Duration
	MaxFiles   int       // 0 means no cap
	Log        io.Writer // defaults to os.Stderr
}

// Run summarizes the candidates in order and returns summaries keyed by
// relative path. The candidate cap is applied up front by truncating the
// (already sorted) list, not inside the loop.
func (o *Orchestrator) Run(ctx context.Context, candidates []walker.Entry) map[string]string {
	if o.MaxFiles > 0 && len(candidates) > o.MaxFiles {
		fmt.Fprintf(o.log(), "Limiting to %d files for summaries\n", o.MaxFiles)
		candidates = candidates[:o.MaxFiles]
	}

	summaries := make(map[string]string)
	for _, cand := range candidates {
		select {
		case <-ctx.Done():
			return summaries
		default:
		}

		content, err := os.ReadFile(cand.Path)
		if err != nil {
			fmt.Fprintf(o.log(), "Error processing %s: %v\n", cand.Path, err)
			continue
		}

		summary, err := o.Summarizer.Summarize(ctx, Request{
			Content: string(content),
			Path:    cand.RelPath,
			Project: o.Project,
			Model:   o.Model,
		})
		if err != nil {
			fmt.Fprintf(o.log(), "Error calling summarization API for %s: %v\n", cand.RelPath, err)
		} else {
			summaries[cand.RelPath] = summary
		}

		// Fixed-rate throttle after every attempt, success or failure.
		o.pause(ctx)
	}

	return summaries
}

func (o *Orchestrator) pause(ctx context.Context) {
	if o.Delay <= 0 {
		return
	}
	select {
	case <-time.After(o.Delay):
	case <-ctx.Done():
	}
}

func (o *Orchestrator) log() io.Writer {
	if o.Log != nil {
		return o.Log
	}
	return os.Stderr
}
