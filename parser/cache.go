package parser

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// maxCachedTemplates bounds the cache; templates are normally constants, so
// exceeding it means callers are building templates dynamically.
const maxCachedTemplates = 4096

var templateCache = mustNewCache()

func mustNewCache() *lru.Cache[string, *MessageTemplate] {
	c, err := lru.New[string, *MessageTemplate](maxCachedTemplates)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCached parses a template, reusing earlier results for the same text.
func ParseCached(template string) *MessageTemplate {
	if cached, ok := templateCache.Get(template); ok {
		return cached
	}

	parsed := Parse(template)
	templateCache.Add(template, parsed)
	return parsed
}

// ClearCache clears the template cache (useful for tests).
func ClearCache() {
	templateCache.Purge()
}
