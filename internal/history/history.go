// Package history keeps the bounded log of completed translations: newest
// first, at most Cap entries, no two entries sharing the same source text.
package history

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Cap is the maximum number of retained entries.
const Cap = 50

// Item is one completed translation.
type Item struct {
	ID             string    `json:"id"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewItem builds an Item with a fresh ID and the current time.
func NewItem(sourceText, translatedText, sourceLang, targetLang string) Item {
	return Item{
		ID:             uuid.New().String(),
		SourceText:     sourceText,
		TranslatedText: translatedText,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Timestamp:      time.Now(),
	}
}

// Log is the in-memory history list.
type Log struct {
	items []Item
}

// NewLog builds a Log seeded with items (assumed newest first); anything
// past Cap is dropped.
func NewLog(items []Item) *Log {
	l := &Log{items: append([]Item(nil), items...)}
	if len(l.items) > Cap {
		l.items = l.items[:Cap]
	}
	return l
}

// normalizeKey makes source texts comparable across whitespace and Unicode
// composition differences, matching the translation-memory key rules.
func normalizeKey(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Add prepends item, removing any existing entry with the same source text
// first, then truncates to Cap. The oldest entry is evicted at the
// boundary.
func (l *Log) Add(item Item) {
	key := normalizeKey(item.SourceText)

	kept := make([]Item, 0, len(l.items)+1)
	kept = append(kept, item)
	for _, it := range l.items {
		if normalizeKey(it.SourceText) == key {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) > Cap {
		kept = kept[:Cap]
	}
	l.items = kept
}

// Items returns the entries, newest first.
func (l *Log) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Get returns the entry with the given ID.
func (l *Log) Get(id string) (Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.items)
}

// Clear removes all entries.
func (l *Log) Clear() {
	l.items = nil
}
