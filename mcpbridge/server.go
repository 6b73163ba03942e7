// Package mcpbridge exposes a built index and its call graph as an MCP
// (Model Context Protocol) server, so an AI agent can query coderef's
// results as native tools. It is a thin external collaborator per §1/§6:
// nothing in model/, xrefindex/, processor/, callgraph/, or persist/
// imports this package.
package mcpbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/viant/coderef/callgraph"
	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

// Server wraps an MCP server over a single, already-built index.
type Server struct {
	mcpServer *server.MCPServer
	index     *xrefindex.CrossRefIndex
}

// NewServer builds an MCP server exposing index's symbols, definitions,
// references, and call graph as tools.
func NewServer(index *xrefindex.CrossRefIndex) *Server {
	s := &Server{
		index: index,
		mcpServer: server.NewMCPServer(
			"coderef",
			"1.0.0",
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// Serve runs the server over stdio until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	listSymbolsTool := mcp.NewTool("list_symbols",
		mcp.WithDescription("List symbols in the index, optionally filtered by an exact name or a regular expression."),
		mcp.WithString("name", mcp.Description("Exact symbol name to match")),
		mcp.WithString("name_regex", mcp.Description("Regular expression the symbol name must match")),
		mcp.WithString("kind", mcp.Description("Restrict to \"function\" or \"method\" symbols; both if omitted")),
	)
	s.mcpServer.AddTool(listSymbolsTool, s.handleListSymbols)

	getDefinitionTool := mcp.NewTool("get_definition",
		mcp.WithDescription("Get every recorded definition location and nested call for a symbol name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name to look up")),
	)
	s.mcpServer.AddTool(getDefinitionTool, s.handleGetDefinition)

	getReferencesTool := mcp.NewTool("get_references",
		mcp.WithDescription("Get every recorded call site and enclosing caller for a symbol name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name to look up")),
	)
	s.mcpServer.AddTool(getReferencesTool, s.handleGetReferences)

	getCallGraphTool := mcp.NewTool("get_call_graph",
		mcp.WithDescription("Build the call graph, optionally restricted to nodes reachable from an entrypoint symbol name, and return its summary."),
		mcp.WithString("entrypoint", mcp.Description("Symbol name to restrict the graph to, by reachability")),
		mcp.WithString("expand_calls", mcp.Description("\"true\" or \"false\"; whether to expand ambiguous callees into multiple May edges (default true)")),
	)
	s.mcpServer.AddTool(getCallGraphTool, s.handleGetCallGraph)
}

func (s *Server) handleListSymbols(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	nameRegex := request.GetString("name_regex", "")
	kind, err := parseKind(request.GetString("kind", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	anyKind := kind == ""

	var query any
	switch {
	case nameRegex != "":
		query = xrefindex.QueryByNameRegex{Pattern: nameRegex, Kind: model.SymbolKind(kind), AnyKind: anyKind}
	case name != "":
		query = xrefindex.QueryByName{Name: name, Kind: model.SymbolKind(kind), AnyKind: anyKind}
	default:
		query = xrefindex.QueryByNameRegex{Pattern: ".*", AnyKind: true}
	}

	results, err := s.index.HandleQuery(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type symbolSummary struct {
		Symbol      string `json:"symbol"`
		Definitions int    `json:"definitions"`
		References  int    `json:"references"`
	}
	summaries := make([]symbolSummary, len(results))
	for i, r := range results {
		summaries[i] = symbolSummary{
			Symbol:      r.Symbol.String(),
			Definitions: len(r.Info.Definitions),
			References:  len(r.Info.References),
		}
	}
	return jsonResult(summaries)
}

func (s *Server) handleGetDefinition(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.index.HandleQuery(xrefindex.QueryByName{Name: name, AnyKind: true})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("symbol %q not found", name)), nil
	}
	return jsonResult(results)
}

func (s *Server) handleGetReferences(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.index.HandleQuery(xrefindex.QueryByName{Name: name, AnyKind: true})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("symbol %q not found", name)), nil
	}
	return jsonResult(results)
}

func (s *Server) handleGetCallGraph(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entrypoint := request.GetString("entrypoint", "")
	expand := request.GetString("expand_calls", "true") != "false"

	opts := callgraph.GraphConstructOptions{
		ExpandCalls: expand,
		Direction:   callgraph.Forward,
		ComputeSCC:  true,
	}

	if entrypoint != "" {
		results, err := s.index.HandleQuery(xrefindex.QueryByName{Name: entrypoint, AnyKind: true})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(results) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("entrypoint symbol %q not found", entrypoint)), nil
		}
		for _, r := range results {
			for _, def := range r.Info.Definitions {
				opts.Entrypoints = append(opts.Entrypoints, def.ToPure())
			}
		}
	}

	graph := callgraph.GetCallGraph(s.index, opts)

	type graphSummary struct {
		Nodes      int `json:"nodes"`
		Edges      int `json:"edges"`
		Unresolved int `json:"unresolved"`
		SCCs       int `json:"sccs"`
	}
	return jsonResult(graphSummary{
		Nodes:      graph.Stats.NumNodes,
		Edges:      graph.Stats.NumEdges,
		Unresolved: graph.Stats.UnresolvedCalls,
		SCCs:       len(graph.SCCs),
	})
}

func parseKind(kind string) (string, error) {
	switch kind {
	case "", "function", "method":
		return kind, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want function or method)", kind)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
