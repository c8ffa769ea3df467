package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// askTool defines the ask MCP tool: free-form questions with
// conversational memory across calls.
var askTool = mcp.NewTool("ask",
	mcp.WithDescription("Ask a travel question in natural language. Supports flight status (\"status of AA123\") and route analytics (\"most on-time airlines from SFO to JFK\"). Follow-up questions reuse context from earlier calls."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The travel question"),
	),
)

// flightStatusTool defines the flight_status MCP tool.
var flightStatusTool = mcp.NewTool("flight_status",
	mcp.WithDescription("Look up the current status of a flight by IATA flight number."),
	mcp.WithString("flight_number",
		mcp.Required(),
		mcp.Description("IATA flight number, e.g. AA123"),
	),
)

// rankAirlinesTool defines the rank_airlines MCP tool.
var rankAirlinesTool = mcp.NewTool("rank_airlines",
	mcp.WithDescription("Rank airlines on a route by on-time arrival percentage (within 15 minutes of schedule), best first."),
	mcp.WithString("origin",
		mcp.Required(),
		mcp.Description("Origin airport IATA code, e.g. JFK"),
	),
	mcp.WithString("destination",
		mcp.Required(),
		mcp.Description("Destination airport IATA code, e.g. ATL"),
	),
	mcp.WithNumber("year",
		mcp.Description("Restrict to one calendar year"),
	),
	mcp.WithNumber("min_flights",
		mcp.Description("Minimum flights per airline to be included (default 10)"),
	),
)

// delaysByDayTool defines the delays_by_day MCP tool.
var delaysByDayTool = mcp.NewTool("delays_by_day",
	mcp.WithDescription("Compare average delays on a route by day of week, best day first."),
	mcp.WithString("origin",
		mcp.Required(),
		mcp.Description("Origin airport IATA code"),
	),
	mcp.WithString("destination",
		mcp.Required(),
		mcp.Description("Destination airport IATA code"),
	),
	mcp.WithNumber("year",
		mcp.Description("Restrict to one calendar year"),
	),
)
