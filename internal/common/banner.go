package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and the endpoints in use
func PrintBanner(config *Config, logger arbor.ILogger) {
	b := banner.New().SetStyle(banner.StyleDouble).SetWidth(60)
	b.PrintTopLine()
	b.PrintCenteredText("APTEKA")
	b.PrintCenteredText("Wyszukiwarka aptek")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", GetVersion(), 12)
	b.PrintKeyValue("Environment", config.Environment, 12)
	b.PrintKeyValue("Geocoder", config.Geocoder.BaseURL, 12)
	b.PrintKeyValue("Overpass", config.Overpass.BaseURL, 12)
	b.PrintBottomLine()

	logger.Info().
		Str("version", GetVersion()).
		Str("environment", config.Environment).
		Str("geocoder", config.Geocoder.BaseURL).
		Str("overpass", config.Overpass.BaseURL).
		Msg("Apteka starting")
}
