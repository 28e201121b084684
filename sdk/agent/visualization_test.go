package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVisualization(t *testing.T) {
	t.Run("markers at root", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"markers","data":[
			{"ident":"EGLL","name":"Heathrow","latitude_deg":51.47,"longitude_deg":-0.46}
		]}`))
		require.NoError(t, err)
		assert.Equal(t, VisualizationMarkers, p.Kind)
		require.Len(t, p.Markers, 1)
		assert.Equal(t, "Heathrow", p.Markers[0].Name)
	})

	t.Run("markers under markers key", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"markers","markers":[{"ident":"EGLL"}]}`))
		require.NoError(t, err)
		require.Len(t, p.Markers, 1)
	})

	t.Run("payload nested under ui_payload", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"ui_payload":{"type":"markers","data":[{"ident":"EGLL"}]}}`))
		require.NoError(t, err)
		assert.Equal(t, VisualizationMarkers, p.Kind)
		require.Len(t, p.Markers, 1)
	})

	t.Run("payload nested under state.ui_payload", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"state":{"ui_payload":{"type":"markers","data":[{"ident":"EGLL"}]}}}`))
		require.NoError(t, err)
		assert.Equal(t, VisualizationMarkers, p.Kind)
		require.Len(t, p.Markers, 1)
	})

	t.Run("route with markers", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"route_with_markers",
			"route":{"from":{"ident":"EGLL","lat":51.47,"lon":-0.46},"to":{"ident":"KJFK","lat":40.64,"lon":-73.78}},
			"markers":[{"ident":"EGLL"},{"ident":"KJFK"}]}`))
		require.NoError(t, err)
		assert.Equal(t, VisualizationRouteWithMarkers, p.Kind)
		require.NotNil(t, p.Route)
		assert.Equal(t, "EGLL", p.Route.From.Ident)
		assert.Equal(t, "KJFK", p.Route.To.Ident)
		assert.InDelta(t, 40.64, p.Route.To.Latitude, 1e-9)
		assert.Len(t, p.Markers, 2)
	})

	t.Run("route endpoint accepts latitude/longitude keys", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"route_with_markers",
			"route":{"from":{"icao":"EGLL","latitude":51.47,"longitude":-0.46},"to":{"ident":"KJFK","lat":40.64,"lon":-73.78}},
			"markers":[]}`))
		require.NoError(t, err)
		assert.Equal(t, "EGLL", p.Route.From.Ident)
		assert.InDelta(t, -0.46, p.Route.From.Longitude, 1e-9)
	})

	t.Run("route missing endpoint fails", func(t *testing.T) {
		_, err := NormalizeVisualization([]byte(`{"type":"route_with_markers",
			"route":{"from":{"ident":"EGLL","lat":51.47,"lon":-0.46}},"markers":[]}`))
		assert.Error(t, err)
	})

	t.Run("marker with details", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"marker_with_details",
			"marker":{"ident":"EGLL","latitude_deg":51.47,"longitude_deg":-0.46,"zoom":10}}`))
		require.NoError(t, err)
		require.NotNil(t, p.Marker)
		assert.Equal(t, "EGLL", p.Marker.Ident)
		require.NotNil(t, p.Marker.Zoom)
		assert.InDelta(t, 10, *p.Marker.Zoom, 1e-9)
	})

	t.Run("marker with details optional coordinates", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"marker_with_details","marker":{"ident":"EGLL"}}`))
		require.NoError(t, err)
		assert.Nil(t, p.Marker.Latitude)
		assert.Nil(t, p.Marker.Longitude)
		assert.Nil(t, p.Marker.Zoom)
	})

	t.Run("marker without ident fails", func(t *testing.T) {
		_, err := NormalizeVisualization([]byte(`{"type":"marker_with_details","marker":{"latitude_deg":51.47}}`))
		assert.Error(t, err)
	})

	t.Run("point with markers", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"point_with_markers",
			"point":{"lat":51.5,"lng":-0.1,"label":"London"},
			"markers":[{"ident":"EGLL"},{"ident":"EGLC"}]}`))
		require.NoError(t, err)
		require.NotNil(t, p.Point)
		assert.InDelta(t, 51.5, p.Point.Latitude, 1e-9)
		assert.Equal(t, "London", p.Point.Label)
		assert.Len(t, p.Markers, 2)
	})

	t.Run("point without coordinates fails", func(t *testing.T) {
		_, err := NormalizeVisualization([]byte(`{"type":"point_with_markers","point":{"label":"x"},"markers":[]}`))
		assert.Error(t, err)
	})

	t.Run("kind discriminant alias", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"kind":"markers","data":[{"ident":"EGLL"}]}`))
		require.NoError(t, err)
		assert.Equal(t, VisualizationMarkers, p.Kind)
	})

	t.Run("unrecognized discriminant fails", func(t *testing.T) {
		_, err := NormalizeVisualization([]byte(`{"type":"heatmap","data":[]}`))
		assert.Error(t, err)
	})

	t.Run("non-object input fails", func(t *testing.T) {
		_, err := NormalizeVisualization([]byte(`[1,2]`))
		assert.Error(t, err)
	})

	t.Run("filter profile carried through", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"markers","data":[],
			"filter_profile":{"min_runway_ft":6000,"surfaces":["asphalt"]}}`))
		require.NoError(t, err)
		require.Contains(t, p.FilterProfile, "min_runway_ft")
		assert.Equal(t, int64(6000), p.FilterProfile["min_runway_ft"].Int())
	})

	t.Run("suggested queries inside payload", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{"type":"markers","data":[],
			"suggested_queries":[{"label":"Weather","query":"weather at EGLL"},"runways at EGLL"]}`))
		require.NoError(t, err)
		require.Len(t, p.SuggestedQueries, 2)
		assert.Equal(t, "Weather", p.SuggestedQueries[0].Label)
		assert.Equal(t, "weather at EGLL", p.SuggestedQueries[0].Query)
		assert.Equal(t, "runways at EGLL", p.SuggestedQueries[1].Label)
		assert.Equal(t, "runways at EGLL", p.SuggestedQueries[1].Query)
	})

	t.Run("suggested queries merged from outer root", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{
			"ui_payload":{"type":"markers","data":[{"ident":"EGLL"}]},
			"suggested_queries":[{"query":"weather at EGLL"}]}`))
		require.NoError(t, err)
		require.Len(t, p.SuggestedQueries, 1)
		assert.Equal(t, "weather at EGLL", p.SuggestedQueries[0].Query)
		assert.Equal(t, "weather at EGLL", p.SuggestedQueries[0].Label)
	})

	t.Run("payload-level queries win over outer root", func(t *testing.T) {
		p, err := NormalizeVisualization([]byte(`{
			"ui_payload":{"type":"markers","data":[],"suggested_queries":["inner"]},
			"suggested_queries":["outer"]}`))
		require.NoError(t, err)
		require.Len(t, p.SuggestedQueries, 1)
		assert.Equal(t, "inner", p.SuggestedQueries[0].Query)
	})
}
