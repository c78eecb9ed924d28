package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
)

// SessionService defines session operations needed by MCP.
type SessionService interface {
	GetStatus(ctx context.Context, id string) (*session.Status, error)
	UpdateChecklistItem(ctx context.Context, req session.UpdateItemRequest) (*session.UpdateItemResult, error)
	Initialize(ctx context.Context, req session.InitRequest) (*session.InitResult, error)
	RecordDecision(ctx context.Context, sessionID string, req session.DecisionRequest) (*session.Decision, error)
	Activity(ctx context.Context, sessionID string, limit int) ([]activity.Entry, error)
	ProjectName(ctx context.Context, sessionID string) (string, error)
}

// Config contains server configuration.
type Config struct {
	Sessions SessionService
	// Engine defaults to recommend.Default().
	Engine  *recommend.Engine
	Logger  *slog.Logger
	Version string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	engine := cfg.Engine
	if engine == nil {
		engine = recommend.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "planwise",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server, engine)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, &toolset{
		sessions: cfg.Sessions,
		engine:   engine,
		logger:   logger,
	})

	return server
}
