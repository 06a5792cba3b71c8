package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/anagrams/internal/async"
	"github.com/Aman-CERP/anagrams/internal/output"
	"github.com/Aman-CERP/anagrams/internal/telemetry"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
	"github.com/Aman-CERP/anagrams/pkg/version"
)

// StatusURI is the resource exposing index_status as JSON.
const StatusURI = "anagrams://index/status"

// Server is the MCP server for anagrams.
// It answers lookups from the searcher it was given, which may swap its
// index between calls.
type Server struct {
	mcp      *mcp.Server
	searcher anagram.Searcher
	progress *async.IndexProgress
	lookups  *telemetry.Lookups
	logger   *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "find_anagrams",
		Description: "Find every dictionary word that uses exactly the same letters as the given word. Matching ignores case and surrounding whitespace; the result includes the word itself when it is in the dictionary.",
	},
	{
		Name:        "index_status",
		Description: "Report whether the anagram index is ready, which folder it was built from and how many files, rows and words the last build read.",
	},
}

// NewServer creates a new MCP server. progress may be nil, in which case the
// index is reported ready with no build statistics.
func NewServer(searcher anagram.Searcher, progress *async.IndexProgress) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}

	s := &Server{
		searcher: searcher,
		progress: progress,
		lookups:  telemetry.NewLookups(telemetry.DefaultConfig()),
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    version.Name,
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerStatusResource()

	return s, nil
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return version.Name, version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with loosely typed arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "find_anagrams":
		word, ok := args["word"].(string)
		if !ok {
			return nil, NewInvalidParamsError("word parameter is required and must be a string")
		}
		return s.handleFindAnagrams(ctx, word)
	case "index_status":
		return s.handleIndexStatus(ctx)
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func (s *Server) handleFindAnagrams(ctx context.Context, word string) (*FindAnagramsOutput, error) {
	if strings.TrimSpace(word) == "" {
		return nil, NewInvalidParamsError("word cannot be empty or whitespace only")
	}
	if err := ctx.Err(); err != nil {
		return nil, MapError(err)
	}

	progress := s.progress
	if progress != nil && progress.IsBuilding() && progress.Snapshot().Builds == 0 {
		return nil, MapError(ErrIndexNotReady)
	}

	start := time.Now()
	requestID := generateRequestID()

	r := s.searcher.Find(word)
	elapsed := time.Since(start)
	s.lookups.Record(telemetry.LookupEvent{Query: r.Query, ResultCount: len(r.Words), Latency: elapsed})

	s.logger.Info("find_anagrams",
		slog.String("request_id", requestID),
		slog.String("query", r.Query),
		slog.Int("result_count", len(r.Words)),
		slog.Duration("duration", elapsed))

	return &FindAnagramsOutput{
		Query:   r.Query,
		Key:     r.Key.String(),
		Words:   r.Words,
		Count:   len(r.Words),
		Message: output.ResultLine(r),
	}, nil
}

func (s *Server) handleIndexStatus(_ context.Context) (*IndexStatusOutput, error) {
	progress := s.progress

	out := &IndexStatusOutput{
		Lookups: s.lookups.Snapshot(),
		Version: version.Version,
	}
	if progress != nil {
		out.Dictionary = progress.Snapshot()
	} else {
		out.Dictionary.Status = string(async.StatusReady)
	}
	return out, nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[0].Name,
		Description: tools[0].Description,
	}, s.mcpFindAnagramsHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[1].Name,
		Description: tools[1].Description,
	}, s.mcpIndexStatusHandler)

	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

func (s *Server) registerStatusResource() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "index_status",
		URI:         StatusURI,
		Description: "Anagram index build status as JSON",
		MIMEType:    "application/json",
	}, func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		status, err := s.handleIndexStatus(ctx)
		if err != nil {
			return nil, MapError(err)
		}
		content, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal index status: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      StatusURI,
					MIMEType: "application/json",
					Text:     string(content),
				},
			},
		}, nil
	})
}

// mcpFindAnagramsHandler is the MCP SDK handler for the find_anagrams tool.
func (s *Server) mcpFindAnagramsHandler(ctx context.Context, _ *mcp.CallToolRequest, input FindAnagramsInput) (
	*mcp.CallToolResult,
	*FindAnagramsOutput,
	error,
) {
	out, err := s.handleFindAnagrams(ctx, input.Word)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, out, nil
}

// mcpIndexStatusHandler is the MCP SDK handler for the index_status tool.
func (s *Server) mcpIndexStatusHandler(ctx context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	*IndexStatusOutput,
	error,
) {
	out, err := s.handleIndexStatus(ctx)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, out, nil
}

// Serve runs the server over stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeTransport(ctx, &mcp.StdioTransport{})
}

// ServeTransport runs the server over t.
func (s *Server) ServeTransport(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("mcp_server_started", slog.String("name", version.Name), slog.String("version", version.Version))

	err := s.mcp.Run(ctx, t)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("mcp_server_stopped")
	return nil
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
