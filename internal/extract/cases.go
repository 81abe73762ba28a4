package extract

import (
	"math"
	"sort"

	"github.com/ppiankov/multisell/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tag values identifying containers in the inventory payload
const (
	TypeCategory          = "Type"
	WeaponCaseTag         = "CSGO_Type_WeaponCase"
	StickerCapsuleTag     = "CSGO_Tool_Sticker_Capsule"
	ContainerLocalizedTag = "Container"
)

// CaseExtractor turns an inventory payload into aggregated container entries
type CaseExtractor struct {
	category      string
	internalNames []string
	localizedName string
	locale        language.Tag
}

// NewCaseExtractor creates an extractor for weapon cases and sticker capsules
func NewCaseExtractor() *CaseExtractor {
	return &CaseExtractor{
		category:      TypeCategory,
		internalNames: []string{WeaponCaseTag, StickerCapsuleTag},
		localizedName: ContainerLocalizedTag,
		locale:        language.English,
	}
}

// Extract aggregates qualifying assets by market hash name, sorted by name.
// A payload without assets or descriptions yields an empty list.
func (e *CaseExtractor) Extract(inv *model.Inventory) []model.CaseItem {
	if inv == nil || inv.Assets == nil || inv.Descriptions == nil {
		return []model.CaseItem{}
	}

	descriptions := make(map[string]model.Description, len(inv.Descriptions))
	for _, desc := range inv.Descriptions {
		descriptions[desc.ClassKey()] = desc
	}

	byName := make(map[string]*model.CaseItem)
	var order []string

	for _, asset := range inv.Assets {
		desc, ok := descriptions[asset.ClassKey()]
		if !ok {
			continue
		}
		if !e.IsContainer(desc) {
			continue
		}

		name := desc.MarketHashName
		if existing, ok := byName[name]; ok {
			existing.Quantity = addQuantity(existing.Quantity, asset.Quantity())
			continue
		}
		byName[name] = &model.CaseItem{
			Name:       name,
			Quantity:   asset.Quantity(),
			Tradable:   desc.Tradable == 1,
			Marketable: desc.Marketable == 1,
		}
		order = append(order, name)
	}

	items := make([]model.CaseItem, 0, len(order))
	for _, name := range order {
		items = append(items, *byName[name])
	}

	col := collate.New(e.locale)
	sort.Slice(items, func(i, j int) bool {
		if c := col.CompareString(items[i].Name, items[j].Name); c != 0 {
			return c < 0
		}
		// Collation-equal names still need a fixed order
		return items[i].Name < items[j].Name
	})

	return items
}

// IsContainer reports whether any tag marks desc as a weapon case or capsule
func (e *CaseExtractor) IsContainer(desc model.Description) bool {
	for _, tag := range desc.Tags {
		if tag.Category != e.category {
			continue
		}
		if tag.LocalizedTagName == e.localizedName {
			return true
		}
		for _, name := range e.internalNames {
			if tag.InternalName == name {
				return true
			}
		}
	}
	return false
}

// ExtractCases runs the default extractor
func ExtractCases(inv *model.Inventory) []model.CaseItem {
	return NewCaseExtractor().Extract(inv)
}

// addQuantity sums two positive quantities, saturating at math.MaxInt
func addQuantity(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
