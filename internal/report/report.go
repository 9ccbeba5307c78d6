// Package report carries the human-readable lines produced by claim and batch
// runs to whoever displays them.
package report

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Kind string

const (
	KindHeader  Kind = "header"
	KindEntry   Kind = "entry"
	KindOutcome Kind = "outcome"
	KindSummary Kind = "summary"
)

// Line is one report line. Entry lines correspond to exactly one claim attempt.
type Line struct {
	Kind      Kind   `json:"kind"`
	AccountID string `json:"account_id,omitempty"`

	// Account is the display name the line is reported under.
	Account string `json:"account,omitempty"`
	Text    string `json:"text"`
}

func Header(text string) Line  { return Line{Kind: KindHeader, Text: text} }
func Entry(text string) Line   { return Line{Kind: KindEntry, Text: text} }
func Summary(text string) Line { return Line{Kind: KindSummary, Text: text} }

func Outcome(accountID, account, text string) Line {
	return Line{Kind: KindOutcome, AccountID: accountID, Account: account, Text: text}
}

// ForAccount tags lines with the account they were produced for.
func ForAccount(lines []Line, accountID, account string) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.AccountID, l.Account = accountID, account
		out[i] = l
	}
	return out
}

func (l Line) String() string {
	switch l.Kind {
	case KindEntry:
		return " - " + l.Text
	case KindOutcome:
		if l.Account != "" {
			return "*" + l.Account + ":* " + l.Text
		}
	}
	return l.Text
}

// Render joins lines the way the operator reads them.
func Render(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// Entries counts claim attempt lines.
func Entries(lines []Line) int {
	n := 0
	for _, l := range lines {
		if l.Kind == KindEntry {
			n++
		}
	}
	return n
}

// Reporter receives report blocks as soon as they are known. A block is the
// set of lines for one account step, or a batch summary.
type Reporter interface {
	Report(ctx context.Context, lines ...Line) error
}

// Collector keeps every reported line in memory.
type Collector struct {
	mu    sync.Mutex
	lines []Line
}

func (c *Collector) Report(_ context.Context, lines ...Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, lines...)
	return nil
}

func (c *Collector) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Fanout reports to every reporter, even after one fails.
type Fanout []Reporter

func (f Fanout) Report(ctx context.Context, lines ...Line) error {
	var errs []error
	for _, r := range f {
		if r == nil {
			continue
		}
		if err := r.Report(ctx, lines...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogReporter writes each line as a structured log event.
type LogReporter struct {
	Logger zerolog.Logger
}

func (r LogReporter) Report(_ context.Context, lines ...Line) error {
	for _, l := range lines {
		r.Logger.Info().
			Str("kind", string(l.Kind)).
			Str("account_id", l.AccountID).
			Msg(l.String())
	}
	return nil
}
