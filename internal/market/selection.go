package market

import (
	"math"

	"github.com/ppiankov/multisell/internal/model"
)

// SelectionEntry is one chosen item with its requested quantity
type SelectionEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Max      int    `json:"max"`
}

// Selection is an ordered set of chosen items. Quantities always stay within
// [1, Max]. The zero value is an empty selection ready to use.
type Selection struct {
	entries []SelectionEntry
	index   map[string]int
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{index: make(map[string]int)}
}

// NewSelectionFromCases selects every case at quantity 1
func NewSelectionFromCases(cases []model.CaseItem) *Selection {
	s := NewSelection()
	s.SelectAll(cases)
	return s
}

// Add selects name at quantity 1; owned below 1 is treated as 1. Adding an
// already selected name only updates its maximum.
func (s *Selection) Add(name string, owned int) {
	if owned < 1 {
		owned = 1
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Max = owned
		s.entries[i].Quantity = clamp(s.entries[i].Quantity, owned)
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, SelectionEntry{Name: name, Quantity: 1, Max: owned})
}

// Remove deselects name
func (s *Selection) Remove(name string) {
	i, ok := s.index[name]
	if !ok {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].Name] = j
	}
}

// Toggle flips the selection state of name and reports whether it is now selected
func (s *Selection) Toggle(name string, owned int) bool {
	if s.Has(name) {
		s.Remove(name)
		return false
	}
	s.Add(name, owned)
	return true
}

// Has reports whether name is selected
func (s *Selection) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// SetQuantity sets the requested quantity, clamped to [1, Max]. Unknown
// names are ignored.
func (s *Selection) SetQuantity(name string, quantity int) {
	i, ok := s.index[name]
	if !ok {
		return
	}
	s.entries[i].Quantity = clamp(quantity, s.entries[i].Max)
}

// SelectAll selects every case at quantity 1 bounded by its owned quantity
func (s *Selection) SelectAll(cases []model.CaseItem) {
	for _, c := range cases {
		s.Add(c.Name, c.Quantity)
	}
}

// Clear deselects everything
func (s *Selection) Clear() {
	s.entries = nil
	s.index = make(map[string]int)
}

// Len returns the number of selected names
func (s *Selection) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the selection in insertion order
func (s *Selection) Entries() []SelectionEntry {
	out := make([]SelectionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of units the selection expands to, saturating at
// math.MaxInt
func (s *Selection) Count() int {
	total := 0
	for _, e := range s.entries {
		if e.Quantity > math.MaxInt-total {
			return math.MaxInt
		}
		total += e.Quantity
	}
	return total
}

// Units expands the selection to one name per requested unit
func (s *Selection) Units() []string {
	var units []string
	for _, e := range s.entries {
		for i := 0; i < e.Quantity; i++ {
			units = append(units, e.Name)
		}
	}
	return units
}

// URL builds the multi-sell deep link for the selection
func (s *Selection) URL() string {
	return MultisellURL(s.Units())
}

func clamp(quantity, upper int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > upper {
		return upper
	}
	return quantity
}
