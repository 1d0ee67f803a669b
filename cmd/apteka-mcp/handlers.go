package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
	"github.com/ternarybob/apteka/internal/services/render"
)

// handleFindPharmacies implements the find_pharmacies tool
func handleFindPharmacies(finder interfaces.FinderService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := request.RequireString("address")
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: address parameter is required"),
				},
				IsError: true,
			}, nil
		}

		resp := finder.Respond(ctx, address)

		logger.Debug().
			Str("search_id", resp.SearchID).
			Str("status", string(resp.Status)).
			Int("places", len(resp.Places)).
			Msg("find_pharmacies served")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(render.Markdown(resp)),
			},
			// A negative search result is still an answer; only failures are errors
			IsError: isFailure(resp.Status),
		}, nil
	}
}

func isFailure(status models.SearchStatus) bool {
	switch status {
	case models.SearchStatusInvalidAddress,
		models.SearchStatusGeocoderUnavailable,
		models.SearchStatusSearchUnavailable:
		return true
	}
	return false
}
