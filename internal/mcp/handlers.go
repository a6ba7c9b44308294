package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/search"
)

var validate = validator.New()

type searchArgs struct {
	Query string `mapstructure:"query" validate:"max=200"`
}

type packArgs struct {
	Name string `mapstructure:"name" validate:"required"`
}

type serverArgs struct {
	Name string `mapstructure:"name" validate:"required"`
	Pack string `mapstructure:"pack" validate:"required"`
}

// decodeArgs fills v from the request arguments and validates it. A non-nil
// result is the tool error to return.
func decodeArgs(ctx context.Context, req mcp.CallToolRequest, v any) *mcp.CallToolResult {
	if err := mapstructure.Decode(req.GetArguments(), v); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := validate.StructCtx(ctx, v); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// searchResult mirrors the JSON search API of the HTTP server.
type searchResult struct {
	Query      string              `json:"query"`
	Packs      []packSummary       `json:"packs"`
	MCPServers []catalog.MCPServer `json:"mcp_servers"`
	Tally      catalog.Tally       `json:"tally"`
}

type packSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Skills      int    `json:"skills"`
	Agents      int    `json:"agents"`
	DocSources  int    `json:"doc_sources"`
}

func summarize(p catalog.Pack) packSummary {
	return packSummary{
		Name:        p.Name,
		Title:       p.Title(),
		Version:     p.Version(),
		Description: p.Description(),
		Skills:      len(p.Skills),
		Agents:      len(p.Agents),
		DocSources:  p.DocSourceCount(),
	}
}

// handleSearchCatalog runs the text filter over packs and servers.
func (s *Server) handleSearchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args searchArgs
	if res := decodeArgs(ctx, req, &args); res != nil {
		return res, nil
	}

	res := search.Catalog(args.Query, s.cat)
	out := searchResult{
		Query:      res.Query,
		Packs:      make([]packSummary, 0, len(res.Packs)),
		MCPServers: res.Servers,
		Tally:      res.Tally(),
	}
	for _, p := range res.Packs {
		out.Packs = append(out.Packs, summarize(p))
	}
	return jsonResult(out)
}

// packDetail is a pack with the servers it declares.
type packDetail struct {
	catalog.Pack
	MCPServers []catalog.MCPServer `json:"mcp_servers"`
}

// handleGetPack returns one pack by name.
func (s *Server) handleGetPack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args packArgs
	if res := decodeArgs(ctx, req, &args); res != nil {
		return res, nil
	}

	pack, err := s.index.Pack(args.Name)
	if err != nil {
		return mcp.NewToolResultError(errorText(err)), nil
	}
	return jsonResult(packDetail{Pack: pack, MCPServers: s.index.ServersOf(pack.Name)})
}

// handleGetMCPServer returns one server by its (name, pack) key.
func (s *Server) handleGetMCPServer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args serverArgs
	if res := decodeArgs(ctx, req, &args); res != nil {
		return res, nil
	}

	srv, err := s.index.Server(args.Name, args.Pack)
	if err != nil {
		return mcp.NewToolResultError(errorText(err)), nil
	}
	return jsonResult(srv)
}

// handleCatalogStats returns the toolbar totals for the whole catalog.
func (s *Server) handleCatalogStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type stats struct {
		Repository  catalog.Repository `json:"repository"`
		GeneratedAt string             `json:"generated_at,omitempty"`
		catalog.Tally
	}
	return jsonResult(stats{
		Repository:  s.cat.Repository,
		GeneratedAt: s.cat.GeneratedAt,
		Tally:       catalog.Count(s.cat.Packs, s.cat.MCPServers),
	})
}

func errorText(err error) string {
	if msg := failure.MessageOf(err); msg != "" {
		return msg.String()
	}
	return err.Error()
}
