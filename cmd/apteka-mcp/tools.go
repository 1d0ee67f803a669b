package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createFindPharmaciesTool returns the find_pharmacies tool definition
func createFindPharmaciesTool() mcp.Tool {
	return mcp.NewTool("find_pharmacies",
		mcp.WithDescription("Find pharmacies within 2 km of an address (OpenStreetMap data). Returns name, opening hours, phone and website of each."),
		mcp.WithString("address",
			mcp.Required(),
			mcp.Description("Free-text address, e.g. \"Marszałkowska 1, Warszawa\""),
		),
	)
}
