package agent

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Field aliases observed across backend tool implementations. The same
// logical field is read under each candidate key, in priority order.
var (
	identAliases     = []string{"ident", "icao"}
	latitudeAliases  = []string{"latitude_deg", "latitude", "lat"}
	longitudeAliases = []string{"longitude_deg", "longitude", "lon"}
	countryAliases   = []string{"iso_country", "country"}
)

// firstKey returns the first field present among keys, in priority order.
func firstKey(v gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// ExtractToolResult builds a ToolResult from a tool_call_end result object.
// Airports and visualization are best-effort: a malformed nested
// visualization leaves that field nil rather than failing the whole result,
// and Raw always retains the complete input object.
func ExtractToolResult(raw string) (ToolResult, error) {
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return ToolResult{}, errors.New("tool result: not an object")
	}
	rawValue, err := ParseValue([]byte(raw))
	if err != nil {
		return ToolResult{}, err
	}

	tr := ToolResult{Raw: rawValue}

	if airports := root.Get("airports"); airports.IsArray() {
		list := []AirportSummary{}
		airports.ForEach(func(_, el gjson.Result) bool {
			if a, ok := airportFromResult(el); ok {
				list = append(list, a)
			}
			return true
		})
		tr.Airports = list
	}

	if vis := root.Get("visualization"); vis.IsObject() {
		payload, err := NormalizeVisualization([]byte(vis.Raw))
		if err != nil {
			GetLogger().Warn("tool result visualization dropped", "error", err)
		} else {
			tr.Visualization = payload
		}
	}

	return tr, nil
}

// airportFromResult maps one JSON element to an AirportSummary via alias
// lookup. An element lacking every identifier alias is dropped, not fatal.
func airportFromResult(el gjson.Result) (AirportSummary, bool) {
	ident := firstKey(el, identAliases...)
	if ident.Type != gjson.String || ident.Str == "" {
		return AirportSummary{}, false
	}

	a := AirportSummary{Ident: ident.Str}
	if name := el.Get("name"); name.Type == gjson.String {
		a.Name = name.Str
	}
	if lat := firstKey(el, latitudeAliases...); lat.Type == gjson.Number {
		f := lat.Float()
		a.Latitude = &f
	}
	if lon := firstKey(el, longitudeAliases...); lon.Type == gjson.Number {
		f := lon.Float()
		a.Longitude = &f
	}
	if country := firstKey(el, countryAliases...); country.Type == gjson.String {
		a.Country = country.Str
	}
	return a, true
}
