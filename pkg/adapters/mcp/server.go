// Package mcp exposes a Guide as a Model Context Protocol server, so an
// assistant can walk a user through the application.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/readiness"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const (
	// cancelWait bounds how long a cancel request waits for the tour to end
	// or for its confirmation to be asked.
	cancelWait      = 30 * time.Second
	pendingInterval = 5 * time.Millisecond
)

// StatusResponse provides a unified structure across tools.
type StatusResponse struct {
	Session domain.Session `json:"session" jsonschema_description:"The tour session in progress"`
	Bridge  memory.State   `json:"bridge" jsonschema_description:"What the front-end is asked to show"`
}

// Guide defines the interface required by the MCP server.
type Guide interface {
	Start(ctx context.Context, tourID string) error
	Advance(ctx context.Context) error
	Retreat(ctx context.Context) error
	RequestCancel(ctx context.Context) error
	Session() domain.Session
	Tours() []string
	Suggest(tourID string) string
	Inspect(tourID string) (schema.TourSpec, error)
	Graph(tourID string) (string, error)
}

// Bridge is the adapter state the assistant relays to the user.
type Bridge interface {
	Snapshot() memory.State
	Answer(accept bool) error
	SetPresent(targets ...domain.Locator)
}

// Server wraps the Guide and exposes it as an MCP Server.
type Server struct {
	guide     Guide
	bridge    Bridge
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(guide Guide, bridge Bridge, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		guide:     guide,
		bridge:    bridge,
		logger:    logger,
		mcpServer: server.NewMCPServer("waypoint-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type startArgs struct {
	TourID string `json:"tour_id"`
}

type answerArgs struct {
	Accept bool `json:"accept"`
}

type targetsArgs struct {
	Present string `json:"present"`
}

type noArgs struct{}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_tours",
		mcp.WithDescription("List the guided tours that can be started."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bytes, err := json.Marshal(s.guide.Tours())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(bytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("start_tour",
		mcp.WithDescription("Start a guided tour. Fails if another tour is in progress."),
		mcp.WithString("tour_id", mcp.Required(), mcp.Description("ID of the tour to start")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Move to the next step. Completes the tour on the last step."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))

	s.mcpServer.AddTool(mcp.NewTool("retreat",
		mcp.WithDescription("Go back to the previous step."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleRetreat))

	s.mcpServer.AddTool(mcp.NewTool("cancel",
		mcp.WithDescription("Ask to leave the tour. Mid-tour this opens a confirmation question (bridge.pending) to be answered with answer_confirmation."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleCancel))

	s.mcpServer.AddTool(mcp.NewTool("answer_confirmation",
		mcp.WithDescription("Answer the pending cancellation question."),
		mcp.WithBoolean("accept", mcp.Required(), mcp.Description("true leaves the tour, false stays")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("report_targets",
		mcp.WithDescription("Report which target locators are currently on screen."),
		mcp.WithString("present", mcp.Required(), mcp.Description("Comma-separated locators, e.g. #menu,#settings")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleTargets))

	s.mcpServer.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Get the current session and what the front-end should show."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStatus))
}

// Handler methods for structured tools

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args startArgs) (StatusResponse, error) {
	if err := s.guide.Start(ctx, args.TourID); err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			if hint := s.guide.Suggest(args.TourID); hint != "" {
				return StatusResponse{}, fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
		}
		return StatusResponse{}, err
	}
	return s.status(), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, _ noArgs) (StatusResponse, error) {
	if err := s.guide.Advance(ctx); err != nil {
		return StatusResponse{}, err
	}
	return s.status(), nil
}

func (s *Server) handleRetreat(ctx context.Context, request mcp.CallToolRequest, _ noArgs) (StatusResponse, error) {
	if err := s.guide.Retreat(ctx); err != nil {
		return StatusResponse{}, err
	}
	return s.status(), nil
}

// handleCancel returns once the tour ended or a confirmation is pending.
func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest, _ noArgs) (StatusResponse, error) {
	if s.pending(ctx) {
		return StatusResponse{}, domain.ErrTransitionInFlight
	}

	pending, err := readiness.RunUntil(ctx, s.guide.RequestCancel, s.pending, cancelWait, pendingInterval)
	if err != nil {
		return StatusResponse{}, err
	}
	if pending {
		s.logger.Debug("cancellation awaits confirmation")
	}
	return s.status(), nil
}

func (s *Server) pending(context.Context) bool {
	return s.bridge.Snapshot().Pending != ""
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest, args answerArgs) (StatusResponse, error) {
	if err := s.bridge.Answer(args.Accept); err != nil {
		return StatusResponse{}, err
	}
	return s.status(), nil
}

func (s *Server) handleTargets(ctx context.Context, request mcp.CallToolRequest, args targetsArgs) (StatusResponse, error) {
	var present []domain.Locator
	for _, t := range strings.Split(args.Present, ",") {
		if t = strings.TrimSpace(t); t != "" {
			present = append(present, domain.Locator(t))
		}
	}
	s.bridge.SetPresent(present...)
	return s.status(), nil
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, _ noArgs) (StatusResponse, error) {
	return s.status(), nil
}

func (s *Server) status() StatusResponse {
	return StatusResponse{Session: s.guide.Session(), Bridge: s.bridge.Snapshot()}
}

func (s *Server) registerResources() {
	// EXPOSE: waypoint://tours/<id> and its Mermaid graph
	for _, id := range s.guide.Tours() {
		tourURI := "waypoint://tours/" + id
		s.mcpServer.AddResource(mcp.NewResource(tourURI, "Tour "+id,
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			spec, err := s.guide.Inspect(id)
			if err != nil {
				return nil, fmt.Errorf("failed to inspect tour: %w", err)
			}
			bytes, _ := json.Marshal(spec)
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: tourURI, MIMEType: "application/json", Text: string(bytes)},
			}, nil
		})

		graphURI := tourURI + "/graph"
		s.mcpServer.AddResource(mcp.NewResource(graphURI, "Tour "+id+" graph",
			mcp.WithMIMEType("text/vnd.mermaid"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			out, err := s.guide.Graph(id)
			if err != nil {
				return nil, fmt.Errorf("failed to render graph: %w", err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: graphURI, MIMEType: "text/vnd.mermaid", Text: out},
			}, nil
		})
	}
}
