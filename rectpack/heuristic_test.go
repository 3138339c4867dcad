package rectpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic_Values(t *testing.T) {
	// numeric values are relied on by callers outside Go
	assert.Equal(t, Heuristic(0), BestShortSideFit)
	assert.Equal(t, Heuristic(1), BestLongSideFit)
	assert.Equal(t, Heuristic(2), BestAreaFit)
	assert.Equal(t, Heuristic(3), BottomLeftRule)
	assert.Equal(t, Heuristic(4), ContactPointRule)
	assert.Equal(t, []Heuristic{BestShortSideFit, BestLongSideFit, BestAreaFit, BottomLeftRule, ContactPointRule}, Heuristics())
}

func TestHeuristic_String(t *testing.T) {
	testCases := []struct {
		input    Heuristic
		expected string
	}{
		{BestShortSideFit, "BestShortSideFit"},
		{BestLongSideFit, "BestLongSideFit"},
		{BestAreaFit, "BestAreaFit"},
		{BottomLeftRule, "BottomLeftRule"},
		{ContactPointRule, "ContactPointRule"},
		{Heuristic(9), "Heuristic(9)"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.input.String())
		})
	}
}

func TestParseHeuristic(t *testing.T) {
	testCases := []struct {
		input    string
		expected Heuristic
	}{
		{"BestShortSideFit", BestShortSideFit},
		{"bssf", BestShortSideFit},
		{"RectBestShortSideFit", BestShortSideFit},
		{"BLSF", BestLongSideFit},
		{" bestareafit ", BestAreaFit},
		{"BottomLeft", BottomLeftRule},
		{"BottomLeftRule", BottomLeftRule},
		{"BL", BottomLeftRule},
		{"ContactPoint", ContactPointRule},
		{"RectContactPointRule", ContactPointRule},
		{"cp", ContactPointRule},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			actual, err := ParseHeuristic(testCase.input)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}

	for _, name := range []string{"", "MinWaste", "WorstAreaFit", "rect"} {
		_, err := ParseHeuristic(name)
		assert.ErrorIs(t, err, ErrUnknownHeuristic, name)
	}
}

func TestHeuristic_Text(t *testing.T) {
	for _, h := range Heuristics() {
		text, err := h.MarshalText()
		require.NoError(t, err)

		var decoded Heuristic
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, h, decoded)
	}

	_, err := Heuristic(200).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownHeuristic)

	var h Heuristic
	assert.ErrorIs(t, h.UnmarshalText([]byte("Skyline")), ErrUnknownHeuristic)
}
