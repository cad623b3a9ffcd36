package services

import (
	"strings"
)

// Product categories used for schedule filtering
const (
	CategoryGasoil  = "GASOIL"
	CategoryJet     = "JET A-1"
	CategoryFuelOil = "HFO/LSFO"
)

var categoryAliases = map[string]string{
	"gasoil":  CategoryGasoil,
	"go":      CategoryGasoil,
	"ago":     CategoryGasoil,
	"diesel":  CategoryGasoil,
	"ulsd":    CategoryGasoil,
	"jet":     CategoryJet,
	"jeta":    CategoryJet,
	"jeta1":   CategoryJet,
	"atk":     CategoryJet,
	"hfo":     CategoryFuelOil,
	"lsfo":    CategoryFuelOil,
	"hsfo":    CategoryFuelOil,
	"vlsfo":   CategoryFuelOil,
	"fueloil": CategoryFuelOil,
	"hfolsfo": CategoryFuelOil,
}

// NormalizeProduct maps a raw product name onto its category. Unrecognized names are their
// own category and come back unchanged; blank names report false.
func NormalizeProduct(raw string) (string, bool) {
	key := productKey(raw)
	if key == "" {
		return "", false
	}
	if category, ok := categoryAliases[key]; ok {
		return category, true
	}
	switch {
	case strings.HasPrefix(key, "gasoil"):
		return CategoryGasoil, true
	case strings.HasPrefix(key, "jeta1"):
		return CategoryJet, true
	case strings.Contains(key, "fueloil"):
		return CategoryFuelOil, true
	}
	return raw, true
}

// ProductMatches reports whether a product name falls in the filter's category.
// An empty filter matches everything.
func ProductMatches(productName, filter string) bool {
	want, ok := NormalizeProduct(filter)
	if !ok {
		return true
	}
	got, ok := NormalizeProduct(productName)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

// productKey lowercases and strips everything but letters and digits, so "Gas Oil 10ppm",
// "GASOIL-10PPM" and "gasoil 10 ppm" share a key
func productKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
