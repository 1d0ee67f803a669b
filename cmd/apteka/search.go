package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/app"
	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/services/render"
)

// runSearch runs one search, prints it as markdown and optionally writes a PDF.
// Returns the process exit code: 0 when pharmacies were found, 1 otherwise.
func runSearch(config *common.Config, logger arbor.ILogger, address, pdfPath string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	finder := app.NewServices(config, logger)
	resp := finder.Respond(ctx, address)

	fmt.Print(render.Markdown(resp))

	if pdfPath != "" {
		data, err := render.PDF(resp)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to render PDF")
			return 1
		}
		if err := os.WriteFile(pdfPath, data, 0644); err != nil {
			logger.Error().Err(err).Str("path", pdfPath).Msg("Failed to write PDF")
			return 1
		}
		logger.Info().Str("path", pdfPath).Int("bytes", len(data)).Msg("PDF written")
	}

	if !resp.OK() {
		return 1
	}
	return 0
}
