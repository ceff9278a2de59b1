// Package picker implements the searchable single-select language widget:
// an open/closed dropdown whose entries are filtered by a free-text query.
package picker

import (
	"strings"

	"github.com/JayaPrakash0264/translator/internal/catalog"
)

// Picker owns the dropdown state for one language selector. The selected
// code itself is controlled by the caller through OnSelect.
type Picker struct {
	entries     []catalog.Language
	excludeCode string

	open  bool
	query string

	onSelect func(code string)
}

// Option configures a Picker at construction time.
type Option func(*Picker)

// WithoutCode removes one entry (typically the auto-detect sentinel) from
// the candidate set before any filtering.
func WithoutCode(code string) Option {
	return func(pk *Picker) { pk.excludeCode = code }
}

// New builds a picker over entries. onSelect is invoked with the chosen
// code; it may be nil.
func New(entries []catalog.Language, onSelect func(code string), opts ...Option) *Picker {
	pk := &Picker{entries: entries, onSelect: onSelect}
	for _, o := range opts {
		o(pk)
	}
	return pk
}

// SetOpen opens or closes the dropdown. A click outside the widget maps to
// SetOpen(false). Opening does not reset the query.
func (pk *Picker) SetOpen(open bool) {
	pk.open = open
}

// IsOpen reports whether the dropdown is showing.
func (pk *Picker) IsOpen() bool {
	return pk.open
}

// UpdateQuery replaces the filter text.
func (pk *Picker) UpdateQuery(text string) {
	pk.query = text
}

// Query returns the current filter text.
func (pk *Picker) Query() string {
	return pk.query
}

// Filtered returns the visible subset of the catalog: entries whose name,
// native name, or code contains the query, case-insensitively. An empty
// result is a valid "no results" state, not an error.
func (pk *Picker) Filtered() []catalog.Language {
	q := strings.ToLower(strings.TrimSpace(pk.query))

	out := make([]catalog.Language, 0, len(pk.entries))
	for _, l := range pk.entries {
		if l.Code == pk.excludeCode {
			continue
		}
		if q == "" || matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l catalog.Language, q string) bool {
	return strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.NativeName), q) ||
		strings.Contains(strings.ToLower(l.Code), q)
}

// Select commits a choice: it notifies the caller, closes the dropdown, and
// clears the query.
func (pk *Picker) Select(code string) {
	if pk.onSelect != nil {
		pk.onSelect(code)
	}
	pk.open = false
	pk.query = ""
}

// Display resolves selectedCode to a catalog entry for rendering. Codes not
// present in the candidate set fall back to the first entry rather than
// failing.
func (pk *Picker) Display(selectedCode string) catalog.Language {
	for _, l := range pk.entries {
		if l.Code == selectedCode {
			return l
		}
	}
	if len(pk.entries) > 0 {
		return pk.entries[0]
	}
	return catalog.Language{}
}
