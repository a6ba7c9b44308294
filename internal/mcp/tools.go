package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchCatalogTool defines the search_catalog MCP tool.
var searchCatalogTool = mcp.NewTool("search_catalog",
	mcp.WithDescription("Search agentic packs and MCP servers by case-insensitive substring. Matches pack names, plugin metadata, skills, agents, server commands and environment variables."),
	mcp.WithString("query",
		mcp.Description("Text to look for; empty returns the whole catalog"),
	),
)

// getPackTool defines the get_pack MCP tool.
var getPackTool = mcp.NewTool("get_pack",
	mcp.WithDescription("Get the full record of one agentic pack: plugin metadata, skills, agents, documentation sources and its MCP servers."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Pack directory name, e.g. rh-sre"),
	),
)

// getMCPServerTool defines the get_mcp_server MCP tool.
var getMCPServerTool = mcp.NewTool("get_mcp_server",
	mcp.WithDescription("Get one MCP server's command, environment variables, security profile and tools. Server names are only unique within a pack."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Server name"),
	),
	mcp.WithString("pack",
		mcp.Required(),
		mcp.Description("Name of the pack that declares the server"),
	),
)

// catalogStatsTool defines the catalog_stats MCP tool.
var catalogStatsTool = mcp.NewTool("catalog_stats",
	mcp.WithDescription("Get catalog totals: packs, skills, agents, documentation sources and MCP servers."),
)
