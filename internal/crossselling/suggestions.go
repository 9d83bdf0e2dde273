package crossselling

// suggestionsByProduct maps a held product to the products worth
// offering next, in offer order.
var suggestionsByProduct = map[string][]string{
	"TRAFİK":             {"KASKO", "FERDİ KAZA", "KONUT"},
	"KASKO":              {"TRAFİK", "FERDİ KAZA", "KONUT"},
	"DASK":               {"KONUT", "YANGIN", "İŞYERİ"},
	"KONUT":              {"DASK", "YANGIN", "FERDİ KAZA"},
	"İŞYERİ":             {"KONUT", "YANGIN", "FERDİ KAZA"},
	"YANGIN":             {"KONUT", "İŞYERİ", "DASK"},
	"NAKLİYAT":           {"İŞYERİ", "FERDİ KAZA", "TRAFİK"},
	"FERDİ KAZA":         {"KONUT", "KASKO", "TAMAMLAYICI SAĞLIK"},
	"TAMAMLAYICI SAĞLIK": {"ÖZEL SAĞLIK", "FERDİ KAZA", "KONUT"},
	"ÖZEL SAĞLIK":        {"TAMAMLAYICI SAĞLIK", "FERDİ KAZA", "KONUT"},
}

var defaultSuggestions = []string{"FERDİ KAZA", "KONUT", "KASKO"}

// SuggestionsFor returns the offer list for a held product.
func SuggestionsFor(product string) []string {
	if list, ok := suggestionsByProduct[product]; ok {
		return list
	}
	return defaultSuggestions
}

// PriorityFor ranks a suggested product: 3 for high-volume everyday
// lines, 1 for TSS/FFL, 2 otherwise.
func PriorityFor(product string) int {
	switch product {
	case "FERDİ KAZA", "KONUT", "İŞYERİ":
		return 3
	case "TSS", "FFL":
		return 1
	default:
		return 2
	}
}
