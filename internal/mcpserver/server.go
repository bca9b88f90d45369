// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Mimir tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ogrim/mimir/internal/wikiservice"
)

// Server wraps the MCP server with Mimir tools.
type Server struct {
	mcp *server.MCPServer
	svc *wikiservice.Service
}

// New creates a new MCP server with all Mimir tools registered.
func New(svc *wikiservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Mimir",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_articles",
		mcp.WithDescription("List all articles, newest first. An optional query filters by case-insensitive title substring."),
		mcp.WithString("query", mcp.Description("Optional title substring filter")),
	), s.listArticles)

	s.mcp.AddTool(mcp.NewTool("read_article",
		mcp.WithDescription("Read the full content of an article by its title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Article title (whitespace is normalized before lookup)")),
	), s.readArticle)

	s.mcp.AddTool(mcp.NewTool("random_article",
		mcp.WithDescription("Return a uniformly chosen article from the collection."),
	), s.randomArticle)

	s.mcp.AddTool(mcp.NewTool("create_article",
		mcp.WithDescription("Create a new article. Content MUST be an HTML fragment following "+
			"the snapshot contract (sanitized HTML, fragment-style internal links). Read the "+
			"contract first via the get_snapshot_contract tool or the mimir://snapshot-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Article title, unique within the collection")),
		mcp.WithString("content", mcp.Required(), mcp.Description("HTML fragment following the Mimir snapshot contract")),
	), s.createArticle)

	s.mcp.AddTool(mcp.NewTool("update_article",
		mcp.WithDescription("Replace the title and content of an existing article, identified by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Article id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New article title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New HTML fragment content")),
	), s.updateArticle)

	s.mcp.AddTool(mcp.NewTool("get_snapshot_contract",
		mcp.WithDescription("Returns the canonical Mimir snapshot format contract. "+
			"Call this before creating or updating articles to ensure correct structure."),
	), s.getSnapshotContract)

	// Resource: snapshot format contract.
	s.mcp.AddResource(
		mcp.NewResource("mimir://snapshot-format", "Snapshot Format Contract",
			mcp.WithResourceDescription("Canonical JSON snapshot format for the article collection."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSnapshotFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := ""
	if q, err := req.RequireString("query"); err == nil {
		query = q
	}
	items := s.svc.ListArticles(ctx, query)
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.svc.GetArticle(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", title)), nil
	}
	out, _ := json.MarshalIndent(a, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) randomArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := s.svc.RandomArticle(ctx)
	if err != nil {
		return mcp.NewToolResultError("collection is empty"), nil
	}
	out, _ := json.MarshalIndent(a, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, err := s.svc.CreateArticle(ctx, title, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (id %s)", a.Title, a.ID)), nil
}

func (s *Server) updateArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, err := s.svc.UpdateArticle(ctx, id, title, content, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", a.Title)), nil
}

func (s *Server) getSnapshotContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SnapshotFormatContract), nil
}

func (s *Server) readSnapshotFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "mimir://snapshot-format",
			MIMEType: "text/markdown",
			Text:     SnapshotFormatContract,
		},
	}, nil
}
