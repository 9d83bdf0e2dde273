package crossselling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityForTiers(t *testing.T) {
	for _, product := range []string{"FERDİ KAZA", "KONUT", "İŞYERİ"} {
		require.Equal(t, 3, PriorityFor(product), product)
	}
	for _, product := range []string{"TSS", "FFL"} {
		require.Equal(t, 1, PriorityFor(product), product)
	}
	for _, product := range []string{"KASKO", "TRAFİK", "TAMAMLAYICI SAĞLIK", "ÖZEL SAĞLIK", "BİLİNMEYEN"} {
		require.Equal(t, 2, PriorityFor(product), product)
	}
}

func TestSuggestionsForFallsBackToDefaults(t *testing.T) {
	require.Equal(t, []string{"TRAFİK", "FERDİ KAZA", "KONUT"}, SuggestionsFor("KASKO"))
	require.Equal(t, defaultSuggestions, SuggestionsFor("BİLİNMEYEN"))
}
