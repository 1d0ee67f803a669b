package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
)

// PharmacyHandler serves the pharmacy search JSON API
type PharmacyHandler struct {
	finder interfaces.FinderService
	logger arbor.ILogger
}

func NewPharmacyHandler(finder interfaces.FinderService, logger arbor.ILogger) *PharmacyHandler {
	return &PharmacyHandler{
		finder: finder,
		logger: logger,
	}
}

// SearchHandler handles GET /api/pharmacies?address=...
// Responds 400 for a missing address; every other outcome is 200 with the
// outcome in the status field.
func (h *PharmacyHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp := h.finder.Respond(r.Context(), r.URL.Query().Get("address"))

	statusCode := http.StatusOK
	if resp.Status == models.SearchStatusInvalidAddress {
		statusCode = http.StatusBadRequest
	}

	h.logger.Debug().
		Str("search_id", resp.SearchID).
		Str("status", string(resp.Status)).
		Int("places", len(resp.Places)).
		Msg("Pharmacy search served")

	if err := WriteJSON(w, statusCode, resp); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write search response")
	}
}
