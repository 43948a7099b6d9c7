package parser

import "strings"

// MessageTemplate represents a parsed message template.
type MessageTemplate struct {
	// Raw is the original template string.
	Raw string

	// Tokens are the parsed tokens from the template.
	Tokens []MessageTemplateToken
}

// Render generates the final message using the provided properties.
func (mt *MessageTemplate) Render(properties map[string]any) string {
	var b strings.Builder
	b.Grow(len(mt.Raw))
	for _, token := range mt.Tokens {
		token.Render(properties, &b)
	}
	return b.String()
}

// PropertyTokens returns the property tokens in template order, skipping
// repeated names.
func (mt *MessageTemplate) PropertyTokens() []*PropertyToken {
	var tokens []*PropertyToken
	seen := make(map[string]bool)
	for _, token := range mt.Tokens {
		if prop, ok := token.(*PropertyToken); ok && !seen[prop.PropertyName] {
			tokens = append(tokens, prop)
			seen[prop.PropertyName] = true
		}
	}
	return tokens
}
