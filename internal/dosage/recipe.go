// Package dosage computes nutrient amounts for preparing new culture medium
// and for replenishing nutrients removed by a harvest.
package dosage

import (
	"fmt"
	"strings"
)

type Mode string

const (
	// ModeNewMedium doses per liter of fresh water.
	ModeNewMedium Mode = "new-medium"
	// ModeReplenish doses per gram of harvested wet paste.
	ModeReplenish Mode = "replenish"
)

// ParseMode accepts the mode names plus a few aliases used on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new-medium", "medium", "water", "new":
		return ModeNewMedium, nil
	case "replenish", "replenishment", "harvest":
		return ModeReplenish, nil
	}
	return "", fmt.Errorf("unknown dosage mode %q (want new-medium or replenish)", s)
}

type Category string

const (
	CategoryBase  Category = "base"
	CategoryMacro Category = "macro"
	CategoryMicro Category = "micro"
)

// Nutrient is one line of a recipe. Rate is per liter in new-medium mode and
// per gram of wet paste in replenish mode.
type Nutrient struct {
	Name     string
	Rate     float64
	Unit     string
	Function string
	Category Category
	Note     string
}

// Recipe is an ordered nutrient list with its input unit and footnote.
type Recipe struct {
	Mode      Mode
	Title     string
	InputUnit string
	InputName string
	Nutrients []Nutrient
	Footnote  string
}

var newMedium = Recipe{
	Mode:      ModeNewMedium,
	Title:     "Medium recipe (modified Zarrouk)",
	InputUnit: "L",
	InputName: "Water volume",
	Nutrients: []Nutrient{
		{Name: "Sodium Bicarbonate", Rate: 10, Unit: "g", Function: "Holds pH and supplies carbon", Category: CategoryBase},
		{Name: "Sea Salt", Rate: 5, Unit: "g", Function: "Brackish base and trace elements", Category: CategoryBase},
		{Name: "Potassium Nitrate", Rate: 2.5, Unit: "g", Function: "Starter nitrogen", Category: CategoryMacro},
		{Name: "Monopotassium Phosphate", Rate: 0.2, Unit: "g", Function: "Energy and phosphorus", Category: CategoryMacro},
		{Name: "Potassium Sulfate", Rate: 0.1, Unit: "g", Function: "Extra potassium", Category: CategoryMacro},
		{Name: "Magnesium Sulfate", Rate: 0.2, Unit: "g", Function: "Core of chlorophyll", Category: CategoryMicro},
		{Name: "Iron mix", Rate: 1, Unit: "ml", Function: "Green color", Category: CategoryMicro},
	},
	Footnote: "Dissolve the macronutrients separately before adding them to the main tank to avoid precipitation.",
}

var replenishment = Recipe{
	Mode:      ModeReplenish,
	Title:     "Replenishment nutrients",
	InputUnit: "g",
	InputName: "Harvested wet paste",
	Nutrients: []Nutrient{
		{Name: "Sodium Bicarbonate", Rate: 0.1, Unit: "g", Note: "Only add if pH < 10"},
		{Name: "Potassium Nitrate", Rate: 0.2, Unit: "g"},
		{Name: "Monopotassium Phosphate", Rate: 0.02, Unit: "g"},
		{Name: "Potassium Sulfate", Rate: 0.01, Unit: "g"},
		{Name: "Magnesium Sulfate", Rate: 0.01, Unit: "g"},
		{Name: "Iron mix", Rate: 0.1, Unit: "ml"},
	},
	Footnote: "These doses restore the minerals carried out in the biomass. Add them after harvesting to keep culture density stable.",
}

// RecipeFor returns a copy of the recipe for mode.
func RecipeFor(mode Mode) (Recipe, error) {
	var r Recipe
	switch mode {
	case ModeNewMedium:
		r = newMedium
	case ModeReplenish:
		r = replenishment
	default:
		return Recipe{}, fmt.Errorf("unknown dosage mode %q", mode)
	}
	r.Nutrients = append([]Nutrient(nil), r.Nutrients...)
	return r, nil
}

// Presets are the quick-pick inputs offered per mode.
var Presets = map[Mode][]float64{
	ModeNewMedium: {1, 10, 20, 100, 500, 1000},
	ModeReplenish: {50, 100, 250, 500, 1000},
}

// DefaultInput is the starting input per mode.
var DefaultInput = map[Mode]float64{
	ModeNewMedium: 10,
	ModeReplenish: 100,
}
