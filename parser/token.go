package parser

import (
	"fmt"
	"strings"
)

// MessageTemplateToken represents a single token in a message template.
type MessageTemplateToken interface {
	// Render writes the token using the provided properties.
	Render(properties map[string]any, b *strings.Builder)
}

// TextToken represents literal text in a message template.
type TextToken struct {
	Text string
}

// Render writes the literal text.
func (t *TextToken) Render(_ map[string]any, b *strings.Builder) {
	b.WriteString(t.Text)
}

// PropertyToken represents a property placeholder in a message template.
type PropertyToken struct {
	PropertyName string

	// Capturing says how the bound argument is converted.
	Capturing CapturingHint

	// Format is the text after ':' in the placeholder, passed to fmt as a verb
	// when it starts with '%'.
	Format string

	// Alignment pads the rendered value; negative values left-align.
	Alignment int
}

// Render writes the property's value, or the placeholder itself when the
// property is missing.
func (p *PropertyToken) Render(properties map[string]any, b *strings.Builder) {
	value, ok := properties[p.PropertyName]
	if !ok {
		b.WriteString("{" + p.PropertyName + "}")
		return
	}

	s := formatValue(value, p.Format)
	switch {
	case p.Alignment > 0 && len(s) < p.Alignment:
		b.WriteString(strings.Repeat(" ", p.Alignment-len(s)))
		b.WriteString(s)
	case p.Alignment < 0 && len(s) < -p.Alignment:
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", -p.Alignment-len(s)))
	default:
		b.WriteString(s)
	}
}

// CapturingHint specifies how a property should be captured.
type CapturingHint int

const (
	// Default captures the value as a scalar.
	Default CapturingHint = iota

	// Stringify captures the value's string form ({$Name}).
	Stringify

	// Destructure captures the value's structure ({@Name}).
	Destructure
)

func formatValue(value any, format string) string {
	if value == nil {
		return "nil"
	}
	if strings.HasPrefix(format, "%") {
		if u, ok := value.(interface{ Unwrap() any }); ok {
			value = u.Unwrap()
		}
		return fmt.Sprintf(format, value)
	}
	return fmt.Sprint(value)
}
