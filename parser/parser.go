// Package parser parses message templates such as
// "Order {OrderId} placed by {@Customer}".
package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// Parse parses a message template string. Malformed placeholders are kept
// as text, so parsing never fails.
func Parse(template string) *MessageTemplate {
	tokens := []MessageTemplateToken{}
	i, textStart := 0, 0

	flushText := func(end int) {
		if end > textStart {
			tokens = append(tokens, &TextToken{Text: template[textStart:end]})
		}
	}

	for i < len(template) {
		switch template[i] {
		case '{':
			flushText(i)
			if i+1 < len(template) && template[i+1] == '{' {
				tokens = append(tokens, &TextToken{Text: "{"})
				i += 2
				textStart = i
				continue
			}

			end := strings.IndexByte(template[i+1:], '}')
			if end == -1 {
				// Unclosed property - treat as text
				tokens = append(tokens, &TextToken{Text: template[i:]})
				return &MessageTemplate{Raw: template, Tokens: tokens}
			}
			end += i + 1
			tokens = append(tokens, parsePropertyToken(template[i+1:end]))
			i = end + 1
			textStart = i

		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				flushText(i)
				tokens = append(tokens, &TextToken{Text: "}"})
				i += 2
				textStart = i
				continue
			}
			i++

		default:
			i++
		}
	}
	flushText(len(template))

	return &MessageTemplate{Raw: template, Tokens: tokens}
}

// parsePropertyToken parses {Name}, {@Name}, {$Name}, {Name,alignment},
// {Name:format} and {Name,alignment:format}.
func parsePropertyToken(content string) MessageTemplateToken {
	hint := Default
	rest := content
	if rest != "" {
		switch rest[0] {
		case '@':
			hint, rest = Destructure, rest[1:]
		case '$':
			hint, rest = Stringify, rest[1:]
		}
	}

	rest, format, _ := strings.Cut(rest, ":")
	name, align, hasAlign := strings.Cut(rest, ",")
	name = strings.TrimSpace(name)

	if !isValidPropertyName(name) {
		return &TextToken{Text: "{" + content + "}"}
	}

	token := &PropertyToken{
		PropertyName: name,
		Capturing:    hint,
		Format:       strings.TrimSpace(format),
	}
	if hasAlign {
		if n, err := strconv.Atoi(strings.TrimSpace(align)); err == nil {
			token.Alignment = n
		}
	}
	return token
}

// isValidPropertyName accepts identifiers and positional indexes.
func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' || (unicode.IsDigit(r) && (i > 0 || isAllDigits(name))) {
			continue
		}
		if r == '.' && i > 0 && i < len(name)-1 {
			continue
		}
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
