package market

import (
	"math"
	"reflect"
	"testing"

	"github.com/ppiankov/multisell/internal/model"
)

func TestSelection_AddAndClamp(t *testing.T) {
	s := NewSelection()
	s.Add("Fracture Case", 5)

	s.SetQuantity("Fracture Case", 3)
	if e := s.Entries()[0]; e.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", e.Quantity)
	}

	s.SetQuantity("Fracture Case", 99)
	if e := s.Entries()[0]; e.Quantity != 5 {
		t.Errorf("expected quantity clamped to 5, got %d", e.Quantity)
	}

	s.SetQuantity("Fracture Case", 0)
	if e := s.Entries()[0]; e.Quantity != 1 {
		t.Errorf("expected quantity clamped to 1, got %d", e.Quantity)
	}

	s.SetQuantity("Unknown Case", 4)
	if s.Len() != 1 {
		t.Errorf("expected unknown names to be ignored, got %d entries", s.Len())
	}
}

func TestSelection_AddUpdatesMax(t *testing.T) {
	s := NewSelection()
	s.Add("Clutch Case", 10)
	s.SetQuantity("Clutch Case", 8)

	s.Add("Clutch Case", 4)
	e := s.Entries()[0]
	if e.Max != 4 || e.Quantity != 4 {
		t.Errorf("expected max 4 and quantity 4, got %+v", e)
	}
	if s.Len() != 1 {
		t.Errorf("expected no duplicate entry, got %d", s.Len())
	}
}

func TestSelection_ZeroOwnedTreatedAsOne(t *testing.T) {
	s := NewSelection()
	s.Add("Custom Case", 0)
	s.SetQuantity("Custom Case", 3)

	if e := s.Entries()[0]; e.Max != 1 || e.Quantity != 1 {
		t.Errorf("expected single unit, got %+v", e)
	}
}

func TestSelection_ToggleAndRemove(t *testing.T) {
	s := NewSelection()
	if !s.Toggle("A", 1) {
		t.Error("expected A to be selected")
	}
	s.Add("B", 1)
	s.Add("C", 1)

	if s.Toggle("A", 1) {
		t.Error("expected A to be deselected")
	}
	if s.Has("A") {
		t.Error("expected A to be gone")
	}

	s.Remove("B")
	s.Remove("missing")

	want := []SelectionEntry{{Name: "C", Quantity: 1, Max: 1}}
	if !reflect.DeepEqual(s.Entries(), want) {
		t.Errorf("expected %+v, got %+v", want, s.Entries())
	}

	// Index must stay consistent after removals
	s.SetQuantity("C", 1)
	s.Add("D", 2)
	s.SetQuantity("D", 2)
	if got := s.Units(); !reflect.DeepEqual(got, []string{"C", "D", "D"}) {
		t.Errorf("unexpected units: %v", got)
	}
}

func TestSelection_SelectAllAndClear(t *testing.T) {
	cases := []model.CaseItem{
		{Name: "Gamma Case", Quantity: 3},
		{Name: "Glove Case", Quantity: 1},
	}
	s := NewSelectionFromCases(cases)
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	for _, e := range s.Entries() {
		if e.Quantity != 1 {
			t.Errorf("expected initial quantity 1 for %s, got %d", e.Name, e.Quantity)
		}
	}

	s.Clear()
	if s.Len() != 0 || s.Has("Gamma Case") {
		t.Error("expected empty selection after Clear")
	}
	if s.URL() != BaseURL {
		t.Errorf("expected bare base URL for empty selection, got %s", s.URL())
	}
}

func TestSelection_URL(t *testing.T) {
	s := NewSelection()
	s.Add("Prisma Case", 4)
	s.SetQuantity("Prisma Case", 2)
	s.Add("Sticker Capsule", 1)

	want := BaseURL + "&items%5B%5D=Prisma%20Case&items%5B%5D=Prisma%20Case&items%5B%5D=Sticker%20Capsule"
	if got := s.URL(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	s.Add("Fracture Case", 2)
	s.SetQuantity("Fracture Case", 2)

	if !s.Has("Fracture Case") || s.Count() != 2 {
		t.Errorf("expected zero value to accept entries, got %+v", s.Entries())
	}
}

func TestSelection_Count(t *testing.T) {
	s := NewSelection()
	if s.Count() != 0 {
		t.Errorf("expected 0 units, got %d", s.Count())
	}

	s.Add("Fracture Case", 5)
	s.SetQuantity("Fracture Case", 4)
	s.Add("Gamma Case", 1)
	if s.Count() != 5 {
		t.Errorf("expected 5 units, got %d", s.Count())
	}
	if len(s.Units()) != s.Count() {
		t.Errorf("expected Units to match Count, got %d", len(s.Units()))
	}

	huge := NewSelection()
	huge.Add("Fracture Case", math.MaxInt)
	huge.SetQuantity("Fracture Case", math.MaxInt)
	huge.Add("Gamma Case", math.MaxInt)
	huge.SetQuantity("Gamma Case", math.MaxInt)
	if huge.Count() != math.MaxInt {
		t.Errorf("expected count to saturate at MaxInt, got %d", huge.Count())
	}
}
