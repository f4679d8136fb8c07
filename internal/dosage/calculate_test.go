package dosage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		unit   string
		want   string
	}{
		{1500, "g", "1.50 kg"},
		{1000, "g", "1.00 kg"},
		{10000, "g", "10.00 kg"},
		{10, "g", "10 g"},
		{999.999, "g", "1000 g"},
		{0.205, "ml", "0.21 ml"},
		{2.5, "g", "2.5 g"},
		{0, "g", "0 g"},
		{1500, "ml", "1500 ml"},
		{0.001, "g", "0 g"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.unit))
		})
	}
}

func amountOf(t *testing.T, res Result, name string) float64 {
	t.Helper()
	for _, l := range res.Lines {
		if l.Nutrient.Name == name {
			return l.Amount
		}
	}
	t.Fatalf("nutrient %s not in result", name)
	return 0
}

func TestCalculate_NewMedium1000L(t *testing.T) {
	res, err := Calculate(ModeNewMedium, 1000)
	require.NoError(t, err)
	require.Len(t, res.Lines, 7)

	assert.Equal(t, 10000.0, amountOf(t, res, "Sodium Bicarbonate"))
	assert.Equal(t, "10.00 kg", res.Lines[0].Formatted())
	assert.Equal(t, "1000 ml", Format(amountOf(t, res, "Iron mix"), "ml"))
	assert.Equal(t, "10g/L", res.Lines[0].RateLabel(ModeNewMedium))
}

func TestCalculate_Replenish100g(t *testing.T) {
	res, err := Calculate(ModeReplenish, 100)
	require.NoError(t, err)
	require.Len(t, res.Lines, 6)

	kno3 := amountOf(t, res, "Potassium Nitrate")
	assert.InDelta(t, 20.0, kno3, 1e-9)
	assert.Equal(t, "20 g", Format(kno3, "g"))
	assert.Equal(t, "Only add if pH < 10", res.Lines[0].Nutrient.Note)
	assert.Equal(t, "0.2g per 1g paste", res.Lines[1].RateLabel(ModeReplenish))
}

func TestCalculate_LinearAndZeroPreserving(t *testing.T) {
	for _, mode := range []Mode{ModeNewMedium, ModeReplenish} {
		t.Run(string(mode), func(t *testing.T) {
			zero, err := Calculate(mode, 0)
			require.NoError(t, err)
			one, err := Calculate(mode, 1)
			require.NoError(t, err)
			many, err := Calculate(mode, 37.5)
			require.NoError(t, err)

			for i := range one.Lines {
				assert.Zero(t, zero.Lines[i].Amount)
				assert.Equal(t, one.Lines[i].Nutrient.Rate, one.Lines[i].Amount)
				assert.InDelta(t, 37.5*one.Lines[i].Amount, many.Lines[i].Amount, 1e-9)
			}
		})
	}
}

func TestCalculate_InvalidInputIsZero(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), -5} {
		res, err := Calculate(ModeNewMedium, in)
		require.NoError(t, err)
		assert.Zero(t, res.Input)
		for _, l := range res.Lines {
			assert.Zero(t, l.Amount)
		}
	}

	_, err := Calculate("sideways", 1)
	assert.Error(t, err)
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]float64{
		"":      0,
		"  ":    0,
		"abc":   0,
		"NaN":   0,
		"+Inf":  0,
		"-3":    0,
		"12.5":  12.5,
		" 100 ": 100,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseQuantity(in), "input %q", in)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Water")
	require.NoError(t, err)
	assert.Equal(t, ModeNewMedium, m)

	m, err = ParseMode("replenishment")
	require.NoError(t, err)
	assert.Equal(t, ModeReplenish, m)

	_, err = ParseMode("compost")
	assert.Error(t, err)
}

func TestRecipeFor_ReturnsCopy(t *testing.T) {
	r, err := RecipeFor(ModeNewMedium)
	require.NoError(t, err)
	r.Nutrients[0].Rate = 99

	again, err := RecipeFor(ModeNewMedium)
	require.NoError(t, err)
	assert.Equal(t, 10.0, again.Nutrients[0].Rate)
	assert.Equal(t, CategoryMicro, again.Nutrients[6].Category)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []float64{1, 10, 20, 100, 500, 1000}, Presets[ModeNewMedium])
	assert.Equal(t, []float64{50, 100, 250, 500, 1000}, Presets[ModeReplenish])
	assert.Equal(t, "2.00", FormatKilograms(2000))
}
