package common

import (
	"github.com/google/uuid"
)

// NewSearchID generates a unique search ID with the "search_" prefix
// Format: search_<uuid>
func NewSearchID() string {
	return "search_" + uuid.New().String()
}
