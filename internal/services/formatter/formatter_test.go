package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/apteka/internal/models"
)

func TestFormat_NoTagsYieldsPlaceholders(t *testing.T) {
	for _, record := range []models.RawPlaceRecord{
		{ID: 1},
		{ID: 2, Tags: map[string]string{}},
		{ID: 3, Tags: map[string]string{"name": "  ", "opening_hours": "", "amenity": "pharmacy"}},
	} {
		details := Format(record)

		assert.Equal(t, models.PlaceholderName, details.Name)
		assert.Equal(t, models.PlaceholderInfo, details.OpeningHours)
		assert.Equal(t, models.PlaceholderInfo, details.Phone)
		assert.Equal(t, models.PlaceholderInfo, details.Website)
	}
}

func TestFormat_AllTags(t *testing.T) {
	details := Format(models.RawPlaceRecord{Tags: map[string]string{
		"name":          "Apteka Centralna",
		"opening_hours": "Mo-Fr 08:00-20:00",
		"phone":         "+48 22 123 45 67",
		"website":       "https://apteka.example.pl",
	}})

	assert.Equal(t, models.PlaceDetails{
		Name:         "Apteka Centralna",
		OpeningHours: "Pon-Pt 08:00-20:00",
		Phone:        "+48 22 123 45 67",
		Website:      "https://apteka.example.pl",
	}, details)
}

func TestFormat_ContactTagFallbacks(t *testing.T) {
	details := Format(models.RawPlaceRecord{Tags: map[string]string{
		"name":            "Apteka pod Orłem",
		"contact:phone":   "+48 12 000 00 00",
		"contact:website": "https://orzel.example.pl",
	}})

	assert.Equal(t, "+48 12 000 00 00", details.Phone)
	assert.Equal(t, "https://orzel.example.pl", details.Website)

	// Plain tags take precedence
	details = Format(models.RawPlaceRecord{Tags: map[string]string{
		"phone":         "111",
		"contact:phone": "222",
	}})
	assert.Equal(t, "111", details.Phone)
}

func TestTranslateOpeningHours(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mo-Fr 08:00-20:00", "Pon-Pt 08:00-20:00"},
		{"Tu 09:00-17:00; Tues 10:00-14:00", "Wt 09:00-17:00; Wt 10:00-14:00"},
		{"Mo-Sa 08:00-21:00; Su 10:00-16:00", "Pon-Sob 08:00-21:00; Niedz 10:00-16:00"},
		{"We,Th 09:00-18:00; PH off", "Śr,Czw 09:00-18:00; Św off"},
		{"Wed 09:00-12:00", "Śr 09:00-12:00"},
		{"Thursday 10:00-12:00", "Czw 10:00-12:00"},
		{"Monday-Friday 08:00-20:00", "Pon-Pt 08:00-20:00"},
		{"Tuesday,Wednesday 09:00-17:00", "Wt,Śr 09:00-17:00"},
		{"Saturday 09:00-13:00; Sunday off", "Sob 09:00-13:00; Niedz off"},
		{"24/7", "24/7"},
		{"", ""},
		{models.PlaceholderInfo, models.PlaceholderInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslateOpeningHours(tt.input))
		})
	}
}

func TestTranslateOpeningHours_Idempotent(t *testing.T) {
	for _, input := range []string{
		"Mo-Fr 08:00-20:00",
		"Tu 09:00-17:00; Tues 10:00-14:00",
		"Mo-Su,PH 00:00-24:00",
		"We-Th 08:00-16:00; Sa 09:00-13:00",
		"Tuhursday",
		"Frhursday",
		"Monday-Friday 08:00-20:00; Saturday 09:00-13:00",
		"Tuesday,Wednesday,Thursday 10:00-18:00; Sunday off",
	} {
		once := TranslateOpeningHours(input)
		assert.Equal(t, once, TranslateOpeningHours(once), input)
	}
}
