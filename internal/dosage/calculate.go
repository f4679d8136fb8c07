package dosage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Line is one computed nutrient amount.
type Line struct {
	Nutrient Nutrient
	Amount   float64
}

// Formatted renders the amount with Format.
func (l Line) Formatted() string { return Format(l.Amount, l.Nutrient.Unit) }

// RateLabel renders the per-unit rate, e.g. "10g/L" or "0.2g per 1g paste".
func (l Line) RateLabel(mode Mode) string {
	rate := strconv.FormatFloat(l.Nutrient.Rate, 'f', -1, 64)
	if mode == ModeReplenish {
		return rate + l.Nutrient.Unit + " per 1g paste"
	}
	return rate + l.Nutrient.Unit + "/L"
}

// Result is a computed recipe.
type Result struct {
	Recipe Recipe
	Input  float64
	Lines  []Line
}

// Calculate scales every nutrient of the mode's recipe by input. Invalid
// input computes as zero.
func Calculate(mode Mode, input float64) (Result, error) {
	recipe, err := RecipeFor(mode)
	if err != nil {
		return Result{}, err
	}
	input = sanitize(input)
	res := Result{Recipe: recipe, Input: input, Lines: make([]Line, 0, len(recipe.Nutrients))}
	for _, n := range recipe.Nutrients {
		res.Lines = append(res.Lines, Line{Nutrient: n, Amount: n.Rate * input})
	}
	return res, nil
}

// ParseQuantity reads a user-typed quantity. Blank, non-numeric, NaN,
// infinite and negative values yield 0.
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Format renders an amount. Grams of 1000 or more become kilograms with two
// decimals; anything else is rounded to at most two decimals with trailing
// zeros dropped.
func Format(amount float64, unit string) string {
	if unit == "g" && amount >= 1000 {
		return fmt.Sprintf("%.2f kg", amount/1000)
	}
	rounded := math.Round(amount*100) / 100
	if rounded == 0 {
		rounded = 0 // normalizes -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + unit
}

// FormatKilograms renders a gram total as kilograms with two decimals.
func FormatKilograms(grams float64) string {
	return fmt.Sprintf("%.2f", grams/1000)
}
