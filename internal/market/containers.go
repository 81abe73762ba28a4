package market

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ppiankov/multisell/internal/model"
)

// knownContainers lists every weapon case and sticker capsule offered in
// manual mode
var knownContainers = [...]string{
	// 2024-2025
	"Fever Case",
	"Gallery Case",
	"Kilowatt Case",
	"Revolution Case",

	// 2022-2023
	"Recoil Case",
	"Dreams & Nightmares Case",

	// Operations
	"Operation Riptide Case",
	"Operation Broken Fang Case",
	"Shattered Web Case",
	"Operation Hydra Case",
	"Operation Wildfire Case",
	"Operation Vanguard Weapon Case",
	"Operation Breakout Weapon Case",
	"Operation Phoenix Weapon Case",
	"Operation Bravo Case",

	"Spectrum 2 Case",
	"Spectrum Case",
	"Prisma 2 Case",
	"Prisma Case",
	"Gamma 2 Case",
	"Gamma Case",
	"Chroma 3 Case",
	"Chroma 2 Case",
	"Chroma Case",

	"Snakebite Case",
	"Fracture Case",
	"Clutch Case",
	"CS20 Case",
	"Danger Zone Case",
	"Horizon Case",
	"Glove Case",
	"Shadow Case",
	"Falchion Case",
	"Revolver Case",
	"Huntsman Weapon Case",
	"Winter Offensive Weapon Case",

	"CS:GO Weapon Case 3",
	"CS:GO Weapon Case 2",
	"CS:GO Weapon Case",

	"eSports 2014 Summer Case",
	"eSports 2013 Winter Case",
	"eSports 2013 Case",

	// Sticker capsules
	"Community Sticker Capsule 1",
	"Sticker Capsule 2",
	"Sticker Capsule",
}

// KnownContainers returns a copy of the built-in container list
func KnownContainers() []string {
	out := make([]string, len(knownContainers))
	copy(out, knownContainers[:])
	return out
}

// IsKnownContainer reports an exact match against the built-in list
func IsKnownContainer(name string) bool {
	for _, known := range knownContainers {
		if known == name {
			return true
		}
	}
	return false
}

// ManualCatalog treats every known container as a single always-available item
func ManualCatalog() []model.CaseItem {
	items := make([]model.CaseItem, 0, len(knownContainers))
	for _, name := range knownContainers {
		items = append(items, model.CaseItem{
			Name:       name,
			Quantity:   1,
			Tradable:   true,
			Marketable: true,
		})
	}
	return items
}

// Suggest returns the closest known container for a free-text name. Exact
// matches (ignoring case) win; otherwise the nearest name within an edit
// distance scaled to its length is returned.
func Suggest(name string) (string, bool) {
	in := normaliseName(name)
	if in == "" {
		return "", false
	}

	best := ""
	bestDist := -1
	for _, known := range knownContainers {
		candidate := normaliseName(known)
		if candidate == in {
			return known, true
		}
		dist := levenshtein.ComputeDistance(in, candidate)
		if dist > levenshteinLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best = known
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}

func normaliseName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 8:
		return 1
	case length <= 16:
		return 2
	default:
		return 3
	}
}
