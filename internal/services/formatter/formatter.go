// Package formatter turns raw map features into display-ready place details.
package formatter

import (
	"strings"

	"github.com/ternarybob/apteka/internal/models"
)

// dayNames maps OSM opening_hours day tokens to Polish abbreviations.
// Full names come before their abbreviations so "Tuesday" wins over "Tues" and "Tu".
// Every pattern is an uppercase letter followed by a lowercase letter or "H", and
// no replacement starts with either, so a second pass finds nothing to replace.
var dayNames = []string{
	"Wednesday", "Śr",
	"Thursday", "Czw",
	"Saturday", "Sob",
	"Tuesday", "Wt",
	"Monday", "Pon",
	"Friday", "Pt",
	"Sunday", "Niedz",
	"Tues", "Wt",
	"Wed", "Śr",
	"Mo", "Pon",
	"Tu", "Wt",
	"We", "Śr",
	"Th", "Czw",
	"Fr", "Pt",
	"Sa", "Sob",
	"Su", "Niedz",
	"PH", "Św",
}

// dayReplacer applies dayNames in a single left-to-right pass
var dayReplacer = strings.NewReplacer(dayNames...)

// Format projects a raw record onto the four display fields.
// Missing or blank tags yield placeholders.
func Format(record models.RawPlaceRecord) models.PlaceDetails {
	return models.PlaceDetails{
		Name:         tagOr(record, models.PlaceholderName, "name"),
		OpeningHours: TranslateOpeningHours(tagOr(record, models.PlaceholderInfo, "opening_hours")),
		Phone:        tagOr(record, models.PlaceholderInfo, "phone", "contact:phone"),
		Website:      tagOr(record, models.PlaceholderInfo, "website", "contact:website"),
	}
}

// TranslateOpeningHours replaces English day abbreviations with Polish ones
func TranslateOpeningHours(hours string) string {
	return dayReplacer.Replace(hours)
}

// tagOr returns the first non-blank tag among keys, or fallback
func tagOr(record models.RawPlaceRecord, fallback string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(record.Tag(key)); value != "" {
			return value
		}
	}
	return fallback
}
