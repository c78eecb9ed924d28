// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/rpggio/planwise/internal/domain/activity"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/rpggio/planwise/internal/domain/session"
	"github.com/rpggio/planwise/internal/mcp"
	"github.com/rpggio/planwise/internal/sqlite"
	"github.com/rpggio/planwise/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Sessions *session.Service
}

// New starts a server with the API under /api and MCP under /mcp.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	engine := recommend.Default()
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	sessionSvc := session.NewService(sqlite.NewSessionRepository(db), activitySvc, engine, nil)

	mcpServer := mcp.NewServer(mcp.Config{Sessions: sessionSvc, Engine: engine})
	server := httptest.NewServer(transport.NewServer(transport.Config{
		Sessions: sessionSvc,
		Engine:   engine,
		MCP:      mcp.NewHTTPHandler(mcpServer, false),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Sessions: sessionSvc,
	}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
