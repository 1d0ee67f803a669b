package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI Page routes (HTML)
	mux.HandleFunc("/", s.app.PageHandler.IndexHandler)
	mux.HandleFunc("/search", s.app.PageHandler.SearchPageHandler)

	// WebSocket route (interactive search session)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Pharmacy search
	mux.HandleFunc("/api/pharmacies", s.app.PharmacyHandler.SearchHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
