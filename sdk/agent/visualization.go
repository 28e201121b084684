package agent

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// VisualizationKind discriminates visualization payload shapes.
type VisualizationKind string

const (
	// VisualizationMarkers is a plain marker list.
	VisualizationMarkers VisualizationKind = "markers"
	// VisualizationRouteWithMarkers is a route between two endpoints plus markers.
	VisualizationRouteWithMarkers VisualizationKind = "route_with_markers"
	// VisualizationMarkerWithDetails is a single focused marker.
	VisualizationMarkerWithDetails VisualizationKind = "marker_with_details"
	// VisualizationPointWithMarkers is an arbitrary point plus nearby markers.
	VisualizationPointWithMarkers VisualizationKind = "point_with_markers"
)

// RoutePoint is one endpoint of a route visualization.
type RoutePoint struct {
	Ident     string
	Latitude  float64
	Longitude float64
}

// Route is the from/to pair of a route_with_markers payload.
type Route struct {
	From RoutePoint
	To   RoutePoint
}

// MarkerDetails is the single marker of a marker_with_details payload.
// Latitude, Longitude and Zoom are nil when absent on the wire.
type MarkerDetails struct {
	Ident     string
	Latitude  *float64
	Longitude *float64
	Zoom      *float64
}

// Point is the focal point of a point_with_markers payload.
type Point struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// SuggestedQuery is one follow-up query offered to the user.
type SuggestedQuery struct {
	Label string
	Query string
}

// VisualizationPayload is the normalized map payload. Exactly the fields for
// its Kind are populated; FilterProfile is carried through opaquely since the
// set of recognized filter keys is owned by the consumer.
type VisualizationPayload struct {
	Kind             VisualizationKind
	Markers          []AirportSummary
	Route            *Route
	Marker           *MarkerDetails
	Point            *Point
	FilterProfile    map[string]Value
	SuggestedQueries []SuggestedQuery
}

// NormalizeVisualization resolves the several observed nestings of a
// visualization payload: a ui_payload key at the root, a state.ui_payload
// path, or a self-describing root object. suggested_queries placed at the
// outer root (a second backend code path) is merged into the payload when the
// payload lacks its own.
func NormalizeVisualization(data []byte) (*VisualizationPayload, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("visualization: not an object")
	}

	payload := root
	if nested := root.Get("ui_payload"); nested.IsObject() {
		payload = nested
	} else if nested := root.Get("state.ui_payload"); nested.IsObject() {
		payload = nested
	}

	p, err := decodeVisualizationPayload(payload)
	if err != nil {
		return nil, err
	}

	if len(p.SuggestedQueries) == 0 {
		if sq := root.Get("suggested_queries"); sq.IsArray() {
			p.SuggestedQueries = suggestedQueries(sq)
		}
	}
	return p, nil
}

func decodeVisualizationPayload(payload gjson.Result) (*VisualizationPayload, error) {
	kind := firstKey(payload, "type", "kind")
	p := &VisualizationPayload{Kind: VisualizationKind(kind.String())}

	switch p.Kind {
	case VisualizationMarkers:
		list := firstKey(payload, "data", "markers")
		if !list.IsArray() {
			return nil, errors.New("visualization: markers payload has no marker list")
		}
		p.Markers = markerList(list)

	case VisualizationRouteWithMarkers:
		route, err := decodeRoute(payload.Get("route"))
		if err != nil {
			return nil, err
		}
		markers := payload.Get("markers")
		if !markers.IsArray() {
			return nil, errors.New("visualization: route payload has no marker list")
		}
		p.Route = route
		p.Markers = markerList(markers)

	case VisualizationMarkerWithDetails:
		marker := payload.Get("marker")
		ident := marker.Get("ident")
		if !marker.IsObject() || ident.Type != gjson.String || ident.Str == "" {
			return nil, errors.New("visualization: marker payload has no ident")
		}
		m := &MarkerDetails{Ident: ident.Str}
		if lat := firstKey(marker, latitudeAliases...); lat.Type == gjson.Number {
			f := lat.Float()
			m.Latitude = &f
		}
		if lon := firstKey(marker, longitudeAliases...); lon.Type == gjson.Number {
			f := lon.Float()
			m.Longitude = &f
		}
		if zoom := marker.Get("zoom"); zoom.Type == gjson.Number {
			f := zoom.Float()
			m.Zoom = &f
		}
		p.Marker = m

	case VisualizationPointWithMarkers:
		point := payload.Get("point")
		lat := point.Get("lat")
		lng := point.Get("lng")
		if lat.Type != gjson.Number || lng.Type != gjson.Number {
			return nil, errors.New("visualization: point payload has no lat/lng")
		}
		markers := payload.Get("markers")
		if !markers.IsArray() {
			return nil, errors.New("visualization: point payload has no marker list")
		}
		p.Point = &Point{
			Latitude:  lat.Float(),
			Longitude: lng.Float(),
			Label:     point.Get("label").String(),
		}
		p.Markers = markerList(markers)

	default:
		return nil, fmt.Errorf("visualization: unrecognized discriminant %q", kind.String())
	}

	if fp := firstKey(payload, "filter_profile", "filterProfile"); fp.IsObject() {
		profile := map[string]Value{}
		fp.ForEach(func(key, el gjson.Result) bool {
			if v, err := ParseValue([]byte(el.Raw)); err == nil {
				profile[key.Str] = v
			}
			return true
		})
		p.FilterProfile = profile
	}

	if sq := payload.Get("suggested_queries"); sq.IsArray() {
		p.SuggestedQueries = suggestedQueries(sq)
	}

	return p, nil
}

func decodeRoute(route gjson.Result) (*Route, error) {
	if !route.IsObject() {
		return nil, errors.New("visualization: route payload has no route")
	}
	from, err := decodeRoutePoint(route.Get("from"))
	if err != nil {
		return nil, err
	}
	to, err := decodeRoutePoint(route.Get("to"))
	if err != nil {
		return nil, err
	}
	return &Route{From: *from, To: *to}, nil
}

func decodeRoutePoint(point gjson.Result) (*RoutePoint, error) {
	ident := firstKey(point, identAliases...)
	lat := firstKey(point, "lat", "latitude")
	lon := firstKey(point, "lon", "longitude")
	if !point.IsObject() || ident.Type != gjson.String || ident.Str == "" ||
		lat.Type != gjson.Number || lon.Type != gjson.Number {
		return nil, errors.New("visualization: incomplete route endpoint")
	}
	return &RoutePoint{Ident: ident.Str, Latitude: lat.Float(), Longitude: lon.Float()}, nil
}

func markerList(list gjson.Result) []AirportSummary {
	markers := []AirportSummary{}
	list.ForEach(func(_, el gjson.Result) bool {
		if a, ok := airportFromResult(el); ok {
			markers = append(markers, a)
		}
		return true
	})
	return markers
}

func suggestedQueries(list gjson.Result) []SuggestedQuery {
	var out []SuggestedQuery
	list.ForEach(func(_, el gjson.Result) bool {
		switch {
		case el.Type == gjson.String:
			out = append(out, SuggestedQuery{Label: el.Str, Query: el.Str})
		case el.IsObject():
			query := firstKey(el, "query", "text").String()
			label := el.Get("label").String()
			if label == "" {
				label = query
			}
			if query != "" {
				out = append(out, SuggestedQuery{Label: label, Query: query})
			}
		}
		return true
	})
	return out
}
