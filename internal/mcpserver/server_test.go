package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ogrim/mimir/internal/testutil"
	"github.com/ogrim/mimir/internal/wikiservice"
)

func testServer(t *testing.T) (*Server, *wikiservice.Service) {
	t.Helper()

	svc := testutil.TempService(t)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call the
	// tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_articles":
		result, err = srv.listArticles(ctx, req)
	case "read_article":
		result, err = srv.readArticle(ctx, req)
	case "random_article":
		result, err = srv.randomArticle(ctx, req)
	case "create_article":
		result, err = srv.createArticle(ctx, req)
	case "update_article":
		result, err = srv.updateArticle(ctx, req)
	case "get_snapshot_contract":
		result, err = srv.getSnapshotContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadArticle(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_article", map[string]interface{}{
		"title":   "Test Page",
		"content": "<p>Hello</p>",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: Test Page") {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_article", map[string]interface{}{
		"title": "Test Page",
	})
	text = resultText(r)
	if !strings.Contains(text, `"title": "Test Page"`) || !strings.Contains(text, "<p>Hello</p>") {
		t.Errorf("read result = %q", text)
	}
}

func TestCreateArticle_DuplicateTitle(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_article", map[string]interface{}{"title": "Dup", "content": ""})

	r := callTool(t, srv, "create_article", map[string]interface{}{"title": "Dup", "content": ""})
	if !r.IsError {
		t.Error("expected error for duplicate title")
	}
}

func TestUpdateArticle(t *testing.T) {
	srv, svc := testServer(t)
	created, err := svc.CreateArticle(context.Background(), "Page", "<p>v1</p>")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "update_article", map[string]interface{}{
		"id":      created.ID,
		"title":   "Page",
		"content": "<p>v2</p>",
	})
	if resultText(r) != "updated: Page" {
		t.Errorf("update result = %q", resultText(r))
	}

	r = callTool(t, srv, "update_article", map[string]interface{}{
		"id":      "no-such-id",
		"title":   "X",
		"content": "",
	})
	if !r.IsError {
		t.Error("expected error for unknown id")
	}
}

func TestListArticles(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	_, _ = svc.CreateArticle(ctx, "Alpha", "")
	_, _ = svc.CreateArticle(ctx, "Beta", "")

	r := callTool(t, srv, "list_articles", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Alpha") || !strings.Contains(text, "Beta") {
		t.Errorf("list = %q", text)
	}

	r = callTool(t, srv, "list_articles", map[string]interface{}{"query": "alp"})
	text = resultText(r)
	if !strings.Contains(text, "Alpha") || strings.Contains(text, "Beta") {
		t.Errorf("filtered list = %q", text)
	}
}

func TestReadArticleMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_article", map[string]interface{}{"title": "Nope"})
	if !r.IsError {
		t.Error("expected error for missing article")
	}
}

func TestRandomArticle(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "random_article", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error on empty collection")
	}

	_, _ = svc.CreateArticle(context.Background(), "Only", "")
	r = callTool(t, srv, "random_article", map[string]interface{}{})
	if r.IsError {
		t.Errorf("random failed: %q", resultText(r))
	}
}

func TestGetSnapshotContract(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_snapshot_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Snapshot Format Contract") {
		t.Error("contract text missing")
	}
}
