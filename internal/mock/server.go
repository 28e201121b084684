// Package mock serves a stand-in aviation agent backend for local
// development. It speaks the same SSE protocol as the real server,
// including the payload nestings the decoder has to tolerate.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

type Server struct {
	port  int
	delay time.Duration
}

func NewServer(port int) *Server {
	return &Server{port: port, delay: 15 * time.Millisecond}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("Mock agent starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the HTTP handler, so tests can serve it in-process.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/chat", s.chatHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agent.HealthResponse{
		Status:          "healthy",
		AgentConfigured: true,
	})
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req agent.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	s.respond(w, flusher, req)
}

func (s *Server) respond(w http.ResponseWriter, flusher http.Flusher, req agent.ChatRequest) {
	sessionID := "mock-" + uuid.NewString()
	if req.SessionID != nil {
		sessionID = *req.SessionID
	}
	lower := strings.ToLower(req.Message)

	var answer string
	switch {
	case strings.Contains(lower, "route") || strings.Contains(lower, "fly"):
		answer = s.routeScenario(w, flusher)
	case strings.Contains(lower, "weather") || strings.Contains(lower, "metar"):
		answer = s.weatherScenario(w, flusher)
	case strings.Contains(lower, "near") || strings.Contains(lower, "airport") || strings.Contains(lower, "find"):
		answer = s.searchScenario(w, flusher)
	default:
		answer = "I can search airports, plan routes, and fetch weather. Try asking about airports near a city."
	}

	s.streamTokens(w, flusher, answer)
	s.sendFinalAnswer(w, flusher, answer, sessionID)

	done, _ := sjson.Set(`{}`, "session_id", sessionID)
	done, _ = sjson.Set(done, "tokens.input", 120)
	done, _ = sjson.Set(done, "tokens.output", len(answer)/4)
	done, _ = sjson.Set(done, "tokens.total", 120+len(answer)/4)
	s.sendFrame(w, flusher, "done", done)
}

func (s *Server) routeScenario(w http.ResponseWriter, flusher http.Flusher) string {
	s.sendFrame(w, flusher, "plan", `{"selected_tool":"plan_route","arguments":{"from":"EGLL","to":"KJFK"},"planning_reasoning":"User wants a route between two airports"}`)
	s.sendFrame(w, flusher, "thinking", `{"content":"Resolving both airports and computing the great-circle leg."}`)
	s.sendFrame(w, flusher, "thinking_done", `{}`)
	s.sendFrame(w, flusher, "tool_call_start", `{"name":"plan_route","arguments":{"from":"EGLL","to":"KJFK"}}`)

	result := `{}`
	result, _ = sjson.SetRaw(result, "airports", heathrowJFK)
	result, _ = sjson.SetRaw(result, "visualization", routeViz)
	end, _ := sjson.Set(`{}`, "name", "plan_route")
	end, _ = sjson.SetRaw(end, "result", result)
	s.sendFrame(w, flusher, "tool_call_end", end)

	// One backend code path nests the payload under state and puts the
	// suggested queries at the outer root.
	ui := `{}`
	ui, _ = sjson.SetRaw(ui, "state.ui_payload", routeViz)
	ui, _ = sjson.SetRaw(ui, "suggested_queries", `["Weather along the route","Alternates near KJFK"]`)
	s.sendFrame(w, flusher, "ui_payload", ui)

	return "The great-circle route from **EGLL** to **KJFK** is about 2,990 nm, tracking west across the North Atlantic."
}

func (s *Server) weatherScenario(w http.ResponseWriter, flusher http.Flusher) string {
	s.sendFrame(w, flusher, "plan", `{"selected_tool":"get_weather","arguments":{"ident":"EHAM"},"planning_reasoning":"User asked about conditions at a specific airport"}`)
	s.sendFrame(w, flusher, "tool_call_start", `{"name":"get_weather","arguments":{"ident":"EHAM"}}`)
	s.sendFrame(w, flusher, "tool_call_end", `{"name":"get_weather","result":{"metar":"EHAM 251355Z 24012KT 9999 SCT035 18/11 Q1018","flight_category":"VFR"}}`)
	s.sendFrame(w, flusher, "ui_payload", `{"ui_payload":{"type":"marker_with_details","marker":{"ident":"EHAM","latitude_deg":52.3086,"longitude_deg":4.7639,"zoom":11}}}`)

	return "Schiphol is reporting **VFR**: wind 240 at 12 kt, visibility 10 km, scattered at 3,500 ft."
}

func (s *Server) searchScenario(w http.ResponseWriter, flusher http.Flusher) string {
	s.sendFrame(w, flusher, "plan", `{"selected_tool":"search_airports","arguments":{"query":"london"},"planning_reasoning":"User wants airports matching a place name"}`)
	s.sendFrame(w, flusher, "thinking", `{"content":"Searching the airport database for london."}`)
	s.sendFrame(w, flusher, "thinking_done", `{}`)
	s.sendFrame(w, flusher, "tool_call_start", `{"name":"search_airports","arguments":{"query":"london"}}`)

	result := `{}`
	result, _ = sjson.SetRaw(result, "airports", londonAirports)
	end, _ := sjson.Set(`{}`, "name", "search_airports")
	end, _ = sjson.SetRaw(end, "result", result)
	s.sendFrame(w, flusher, "tool_call_end", end)

	viz := `{"type":"markers"}`
	viz, _ = sjson.SetRaw(viz, "data", londonAirports)
	viz, _ = sjson.SetRaw(viz, "filter_profile", `{"scheduled_service":true}`)
	viz, _ = sjson.SetRaw(viz, "suggested_queries", `[{"label":"Heathrow weather","query":"weather at EGLL"},{"label":"Route to JFK","query":"plan a route from EGLL to KJFK"}]`)
	wrapped, _ := sjson.SetRaw(`{}`, "ui_payload", viz)
	s.sendFrame(w, flusher, "ui_payload", wrapped)

	return "I found **3 airports** around London: Heathrow (EGLL), Gatwick (EGKK) and City (EGLC). All three have scheduled service."
}

func (s *Server) sendFinalAnswer(w http.ResponseWriter, flusher http.Flusher, answer, sessionID string) {
	state, _ := sjson.Set(`{}`, "final_answer", answer)
	state, _ = sjson.Set(state, "session_id", sessionID)
	body, _ := sjson.SetRaw(`{}`, "state", state)
	s.sendFrame(w, flusher, "final_answer", body)
}

func (s *Server) streamTokens(w http.ResponseWriter, flusher http.Flusher, response string) {
	// Batch runes for a realistic token cadence
	batchSize := 3
	runes := []rune(response)

	for i := 0; i < len(runes); i += batchSize {
		end := i + batchSize
		if end > len(runes) {
			end = len(runes)
		}

		chunk, _ := sjson.Set(`{}`, "content", string(runes[i:end]))
		s.sendFrame(w, flusher, "message", chunk)
		time.Sleep(s.delay)
	}
}

func (s *Server) sendFrame(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	agent.WriteFrame(w, event, data)
	flusher.Flush()
	time.Sleep(s.delay)
}

const heathrowJFK = `[
	{"ident":"EGLL","name":"London Heathrow Airport","latitude_deg":51.4706,"longitude_deg":-0.461941,"iso_country":"GB"},
	{"ident":"KJFK","name":"John F Kennedy International Airport","latitude_deg":40.639801,"longitude_deg":-73.7789,"iso_country":"US"}
]`

const routeViz = `{
	"type":"route_with_markers",
	"route":{
		"from":{"ident":"EGLL","lat":51.4706,"lon":-0.461941},
		"to":{"ident":"KJFK","lat":40.639801,"lon":-73.7789}
	},
	"markers":` + heathrowJFK + `
}`

const londonAirports = `[
	{"ident":"EGLL","name":"London Heathrow Airport","latitude_deg":51.4706,"longitude_deg":-0.461941,"iso_country":"GB"},
	{"ident":"EGKK","name":"London Gatwick Airport","latitude_deg":51.148102,"longitude_deg":-0.190278,"iso_country":"GB"},
	{"ident":"EGLC","name":"London City Airport","latitude_deg":51.505299,"longitude_deg":0.055278,"iso_country":"GB"}
]`
