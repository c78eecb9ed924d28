package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// stdioSession wraps an MCP client session for stdio transport testing
type stdioSession struct {
	session *sdkmcp.ClientSession
	cancel  context.CancelFunc
}

func newStdioSession(t *testing.T) *stdioSession {
	t.Helper()
	return newStdioSessionWithEnv(t, nil)
}

func newStdioSessionWithEnv(t *testing.T, extraEnv []string) *stdioSession {
	t.Helper()

	binaryPath := "./bin/planner"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/planner"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/planner ./cmd/planner' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath, "serve")
	cmd.Env = append(os.Environ(),
		"PLANNER_TRANSPORT_MODE=stdio",
		"PLANNER_DB_PATH=:memory:",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session, cancel: cancel}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_ChecklistWorkflow(t *testing.T) {
	s := newStdioSession(t)

	initResp := s.callTool(t, "initialize_session", map[string]any{
		"projectName": "Docs Site",
		"projectType": "documentation",
	})
	var init struct {
		Session struct {
			ID       string   `json:"id"`
			Features []string `json:"features"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(initResp, &init))
	require.NotEmpty(t, init.Session.ID)
	require.Equal(t, []string{"search", "versioning", "seo"}, init.Session.Features)

	_ = s.callTool(t, "update_checklist_item", map[string]any{
		"sessionId": init.Session.ID,
		"category":  "Project Setup",
		"itemId":    "repo",
		"completed": true,
	})
	_ = s.callTool(t, "update_checklist_item", map[string]any{
		"sessionId": init.Session.ID,
		"category":  "Testing",
		"itemId":    "e2e",
		"completed": false,
	})

	statusResp := s.callTool(t, "get_status", map[string]any{"sessionId": init.Session.ID})
	var status struct {
		Session struct {
			Phase string `json:"phase"`
		} `json:"session"`
		Progress struct {
			Percentage int `json:"percentage"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(statusResp, &status))
	require.Equal(t, 50, status.Progress.Percentage)
	require.Equal(t, "development", status.Session.Phase)
}

func TestStdioFunctional_MCPProtocolCompliance(t *testing.T) {
	s := newStdioSession(t)

	initResult := s.session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "planwise", initResult.ServerInfo.Name)
	require.NotEmpty(t, initResult.Instructions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 8)

	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}
	require.Contains(t, toolMap, "update_checklist_item")
	require.Contains(t, toolMap, "generate_documentation")
	require.NotEmpty(t, toolMap["get_recommendations"].Description)
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "planner.log")
	s := newStdioSessionWithEnv(t, []string{
		"PLANNER_LOG_PATH=" + logPath,
		"PLANNER_LOG_LEVEL=debug",
		"PLANNER_LOG_FORMAT=text",
	})

	_ = s.callTool(t, "suggest_next_steps", map[string]any{"currentPhase": "architecture"})

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		text := string(data)
		return strings.Contains(text, `msg="mcp traffic"`) &&
			strings.Contains(text, "stage=request") &&
			strings.Contains(text, "stage=response")
	}, 5*time.Second, 100*time.Millisecond)
}

func TestStdioFunctional_DocumentationResources(t *testing.T) {
	s := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := s.session.ListResources(ctx, nil)
	require.NoError(t, err)

	uris := make(map[string]*sdkmcp.Resource, len(resources.Resources))
	for _, r := range resources.Resources {
		uris[r.URI] = r
	}
	for _, uri := range []string{"planner://docs/index", "planner://docs/phases", "planner://docs/template"} {
		r, ok := uris[uri]
		require.True(t, ok, "missing expected doc resource: %s", uri)
		require.Equal(t, "text/markdown", r.MIMEType)
		require.Greater(t, r.Size, int64(0))
	}

	read, err := s.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "planner://docs/index"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Contains(t, read.Contents[0].Text, "Agent Docs Index")
}
