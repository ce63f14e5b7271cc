package knowledge

import (
	"fmt"
	"strings"

	apperrors "github.com/yanqian/cafebui-chatbot/pkg/errors"
)

// Base is the read-only knowledge store. It is built once and never mutated,
// so it is safe to share between concurrent requests.
type Base struct {
	name     string
	entries  []Entry
	index    map[string]int
	prompt   string
	defaults []string
}

// NewBase validates doc and freezes it into a Base. Keywords are lowercased
// because questions are lowercased before matching.
func NewBase(doc Document) (*Base, error) {
	if len(doc.Entries) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, "knowledge needs at least one entry", nil)
	}
	if strings.TrimSpace(doc.Prompt) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, "knowledge prompt cannot be empty", nil)
	}

	base := &Base{
		name:    strings.TrimSpace(doc.Name),
		entries: make([]Entry, 0, len(doc.Entries)),
		index:   make(map[string]int, len(doc.Entries)),
		prompt:  strings.TrimSpace(doc.Prompt),
	}
	for i, entry := range doc.Entries {
		keyword := strings.ToLower(entry.Keyword)
		if strings.TrimSpace(keyword) == "" {
			return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, fmt.Sprintf("entry %d has an empty keyword", i), nil)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, fmt.Sprintf("entry %q has an empty answer", keyword), nil)
		}
		if _, dup := base.index[keyword]; dup {
			return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, fmt.Sprintf("duplicate keyword %q", keyword), nil)
		}
		base.index[keyword] = len(base.entries)
		base.entries = append(base.entries, Entry{Keyword: keyword, Answer: entry.Answer})
	}

	for _, reply := range doc.Defaults {
		if strings.TrimSpace(reply) == "" {
			continue
		}
		base.defaults = append(base.defaults, reply)
	}
	if len(base.defaults) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidKnowledge, "knowledge needs at least one default reply", nil)
	}
	return base, nil
}

// Name is the display name of the venue the knowledge describes.
func (b *Base) Name() string {
	return b.name
}

// Lookup returns the canned answer registered for keyword.
func (b *Base) Lookup(keyword string) (string, bool) {
	i, ok := b.index[strings.ToLower(keyword)]
	if !ok {
		return "", false
	}
	return b.entries[i].Answer, true
}

// Entries returns the table in match priority order.
func (b *Base) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// PromptBlock is the descriptive text injected into the remote model prompt.
func (b *Base) PromptBlock() string {
	return b.prompt
}

// Defaults returns the replies used when no keyword matches.
func (b *Base) Defaults() []string {
	out := make([]string, len(b.defaults))
	copy(out, b.defaults)
	return out
}

// Len reports the number of keyword entries.
func (b *Base) Len() int {
	return len(b.entries)
}
