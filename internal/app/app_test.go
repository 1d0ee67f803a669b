package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
)

func TestNew_WiresComponents(t *testing.T) {
	application, err := New(common.NewDefaultConfig(), arbor.NewLogger())
	require.NoError(t, err)

	assert.NotNil(t, application.GeocodingService)
	assert.NotNil(t, application.PlacesService)
	assert.NotNil(t, application.FinderService)
	assert.NotNil(t, application.APIHandler)
	assert.NotNil(t, application.PharmacyHandler)
	assert.NotNil(t, application.PageHandler)
	assert.NotNil(t, application.WSHandler)
	assert.NoError(t, application.Close())
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, arbor.NewLogger())
	assert.Error(t, err)
}

func TestNewServices(t *testing.T) {
	assert.NotNil(t, NewServices(common.NewDefaultConfig(), arbor.NewLogger()))
}
