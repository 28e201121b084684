package agent

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id,omitempty"`
}

// HealthResponse is the response body for the /health endpoint.
type HealthResponse struct {
	Status          string `json:"status"`
	AgentConfigured bool   `json:"agent_configured"`
}

// TokenUsage reports token counts from a done event. Missing fields on the
// wire default to zero.
type TokenUsage struct {
	Input  int
	Output int
	Total  int
}

// AirportSummary is one airport row extracted from a tool result or a
// visualization marker list. Latitude and Longitude are nil when the source
// element carried neither alias for them.
type AirportSummary struct {
	Ident     string
	Name      string
	Latitude  *float64
	Longitude *float64
	Country   string
}

// ToolResult is the structured view of a tool_call_end result object.
// Airports is nil when the result had no airports key at all, as opposed to
// an empty slice for a present-but-empty list. Raw always retains the
// complete original object so consumers can reach fields not modeled here.
type ToolResult struct {
	Airports      []AirportSummary
	Visualization *VisualizationPayload
	Raw           Value
}
