package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToolResult(t *testing.T) {
	t.Run("airport list with canonical keys", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[
			{"ident":"EGLL","name":"Heathrow","latitude_deg":51.4706,"longitude_deg":-0.461941,"iso_country":"GB"},
			{"ident":"KJFK","name":"John F Kennedy Intl","latitude_deg":40.6398,"longitude_deg":-73.7789,"iso_country":"US"}
		]}`)
		require.NoError(t, err)
		require.Len(t, tr.Airports, 2)
		a := tr.Airports[0]
		assert.Equal(t, "EGLL", a.Ident)
		assert.Equal(t, "Heathrow", a.Name)
		require.NotNil(t, a.Latitude)
		assert.InDelta(t, 51.4706, *a.Latitude, 1e-9)
		require.NotNil(t, a.Longitude)
		assert.InDelta(t, -0.461941, *a.Longitude, 1e-9)
		assert.Equal(t, "GB", a.Country)
	})

	t.Run("alias keys", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[{"icao":"LFPG","lat":49.0097,"lon":2.5479,"country":"FR"}]}`)
		require.NoError(t, err)
		require.Len(t, tr.Airports, 1)
		a := tr.Airports[0]
		assert.Equal(t, "LFPG", a.Ident)
		require.NotNil(t, a.Latitude)
		assert.InDelta(t, 49.0097, *a.Latitude, 1e-9)
		assert.Equal(t, "FR", a.Country)
	})

	t.Run("alias priority prefers canonical key", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[{"ident":"EGLL","icao":"XXXX","latitude_deg":51.5,"lat":0}]}`)
		require.NoError(t, err)
		require.Len(t, tr.Airports, 1)
		assert.Equal(t, "EGLL", tr.Airports[0].Ident)
		assert.InDelta(t, 51.5, *tr.Airports[0].Latitude, 1e-9)
	})

	t.Run("element without ident is dropped", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[{"name":"nameless"},{"ident":"EGLL"}]}`)
		require.NoError(t, err)
		require.Len(t, tr.Airports, 1)
		assert.Equal(t, "EGLL", tr.Airports[0].Ident)
	})

	t.Run("missing coordinates stay nil", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[{"ident":"EGLL"}]}`)
		require.NoError(t, err)
		require.Len(t, tr.Airports, 1)
		assert.Nil(t, tr.Airports[0].Latitude)
		assert.Nil(t, tr.Airports[0].Longitude)
	})

	t.Run("absent airports key yields nil slice", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"weather":{"metar":"EGLL 251350Z"}}`)
		require.NoError(t, err)
		assert.Nil(t, tr.Airports)
	})

	t.Run("present empty airports yields empty non-nil slice", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[]}`)
		require.NoError(t, err)
		require.NotNil(t, tr.Airports)
		assert.Empty(t, tr.Airports)
	})

	t.Run("nested visualization", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[],"visualization":{"type":"markers","data":[{"ident":"EGLL"}]}}`)
		require.NoError(t, err)
		require.NotNil(t, tr.Visualization)
		assert.Equal(t, VisualizationMarkers, tr.Visualization.Kind)
	})

	t.Run("malformed visualization leaves field nil", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[{"ident":"EGLL"}],"visualization":{"type":"nonsense"}}`)
		require.NoError(t, err)
		assert.Nil(t, tr.Visualization)
		assert.Len(t, tr.Airports, 1)
	})

	t.Run("raw retains the complete object", func(t *testing.T) {
		tr, err := ExtractToolResult(`{"airports":[],"extra":{"deep":true}}`)
		require.NoError(t, err)
		out, err := json.Marshal(tr.Raw)
		require.NoError(t, err)
		assert.JSONEq(t, `{"airports":[],"extra":{"deep":true}}`, string(out))
	})

	t.Run("non-object input fails", func(t *testing.T) {
		_, err := ExtractToolResult(`[1,2,3]`)
		assert.Error(t, err)
		_, err = ExtractToolResult(`"text"`)
		assert.Error(t, err)
	})
}
