package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// MachineList is the structured result of list_machines.
type MachineList struct {
	Machines []string `json:"machines" jsonschema_description:"IDs of the machines that can be run"`
}

// Server exposes a RunService as an MCP Server.
type Server struct {
	service   ports.RunService
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc ports.RunService, opts ...Option) *Server {
	s := &Server{
		service:   svc,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("automata-mcp", automata.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("MCP Server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine over an input and return the report of its last generation."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("ID of the machine to run")),
		mcp.WithString("input", mcp.Description("Input written on the input tape (default empty)")),
		mcp.WithOutputSchema[domain.RunReport](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	// TOOL: list_machines
	listTool := mcp.NewTool("list_machines",
		mcp.WithDescription("List the machines that can be run."),
		mcp.WithOutputSchema[MachineList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListMachines))

	// TOOL: get_report
	reportTool := mcp.NewTool("get_report",
		mcp.WithDescription("Fetch a stored run report."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Report ID returned by run_machine")),
		mcp.WithOutputSchema[domain.RunReport](),
	)
	s.mcpServer.AddTool(reportTool, mcp.NewStructuredToolHandler(s.handleGetReport))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state table of a machine as a Mermaid flowchart."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("ID of the machine")),
		mcp.WithString("report", mcp.Description("Report ID whose last generation is highlighted (optional)")),
	), s.handleGetGraph)
}

// Handler methods for structured tools

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.RunReport, error) {
	machineID, _ := args["machine"].(string)
	input, _ := args["input"].(string)
	if machineID == "" {
		return domain.RunReport{}, errors.New("machine is required")
	}

	report, err := s.service.Run(ctx, machineID, input)
	if err != nil && report == nil {
		return domain.RunReport{}, fmt.Errorf("run failed: %w", err)
	}
	if err != nil {
		s.logger.Warn("MCP run_machine: run interrupted", "machine", machineID, "report", report.ID, "err", err)
	}
	return *report, nil
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MachineList, error) {
	ids, err := s.service.Machines(ctx)
	if err != nil {
		return MachineList{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return MachineList{Machines: ids}, nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.RunReport, error) {
	id, _ := args["id"].(string)
	report, err := s.service.Report(ctx, id)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("report failed: %w", err)
	}
	return *report, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machineID := request.GetString("machine", "")
	def, err := s.service.Definition(ctx, machineID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}

	var overlay *graph.GraphOverlay
	if id := request.GetString("report", ""); id != "" {
		report, err := s.service.Report(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
		}
		overlay = graph.OverlayFromReport(report)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(def, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://machines
	s.mcpServer.AddResource(mcp.NewResource("automata://machines", "Available Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.service.Machines(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, _ := json.Marshal(MachineList{Machines: ids})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
