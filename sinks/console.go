package sinks

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/parser"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

var levelAbbreviations = [...]string{"VRB", "DBG", "INF", "WRN", "ERR", "FTL"}

// ConsoleSink writes rendered events, one per line.
type ConsoleSink struct {
	output         io.Writer
	mu             sync.Mutex
	showProperties bool
}

// NewConsoleSink creates a new console sink that writes to stdout.
func NewConsoleSink() *ConsoleSink {
	return NewConsoleSinkWithWriter(os.Stdout)
}

// NewConsoleSinkWithWriter creates a console sink that writes to w.
func NewConsoleSinkWithWriter(w io.Writer) *ConsoleSink {
	return &ConsoleSink{output: w}
}

// NewConsoleSinkWithProperties creates a console sink that also lists
// properties not referenced by the template.
func NewConsoleSinkWithProperties(w io.Writer) *ConsoleSink {
	return &ConsoleSink{output: w, showProperties: true}
}

// Emit writes the event.
func (cs *ConsoleSink) Emit(event *core.LogEvent) {
	tmpl := parser.ParseCached(event.MessageTemplate)

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(event.Timestamp.Format("2006-01-02 15:04:05.000"))
	b.WriteString("] [")
	b.WriteString(levelAbbreviation(event.Level))
	b.WriteString("] ")
	b.WriteString(tmpl.Render(event.Properties))

	if cs.showProperties {
		if extra := extraProperties(tmpl, event.Properties); extra != "" {
			b.WriteString(" ")
			b.WriteString(extra)
		}
	}
	if event.Exception != nil {
		b.WriteString("\n")
		b.WriteString(event.Exception.Error())
	}
	b.WriteString("\n")

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, err := io.WriteString(cs.output, b.String()); err != nil && selflog.IsEnabled() {
		selflog.Printf("[console] write failed: %v", err)
	}
}

// Close does nothing; the writer belongs to the caller.
func (cs *ConsoleSink) Close() error {
	return nil
}

func levelAbbreviation(level core.LogEventLevel) string {
	if level < core.VerboseLevel || int(level) >= len(levelAbbreviations) {
		return "???"
	}
	return levelAbbreviations[level]
}

// extraProperties renders properties not referenced by the template,
// sorted by name.
func extraProperties(tmpl *parser.MessageTemplate, properties map[string]any) string {
	used := make(map[string]bool)
	for _, token := range tmpl.PropertyTokens() {
		used[token.PropertyName] = true
	}

	var names []string
	for name := range properties {
		if !used[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, properties[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
