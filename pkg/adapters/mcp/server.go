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

	"github.com/aretw0/worldforge"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/aretw0/worldforge/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	HistoryURI = "worldforge://history"
	PresetsURI = "worldforge://presets"
)

// Server wraps a Converter and exposes it as an MCP Server.
type Server struct {
	converter ports.Converter
	presets   ports.PresetLoader
	recorder  *session.Recorder
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithRecorder records successful conversions and exposes worldforge://history.
func WithRecorder(r *session.Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance. presets may be nil.
func NewServer(converter ports.Converter, presets ports.PresetLoader, opts ...Option) *Server {
	s := &Server{
		converter: converter,
		presets:   presets,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("worldforge-mcp", strings.TrimSpace(worldforge.Version)),
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

// ServeSSE starts the server on the given port using SSE.
// It returns once ctx is cancelled and the listener has shut down.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.SSEHandler(baseURL),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// SSEHandler returns the /sse and /message endpoints as one handler.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	return mux
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

func (s *Server) registerTools() {
	// TOOL: convert
	convertTool := mcp.NewTool("convert",
		mcp.WithDescription("Convert a point between a parent's local frame and world space using exact decimal arithmetic."),
		mcp.WithString("point", mcp.Description(`Point as "x,y,z". Optional when the preset carries a sample input.`)),
		mcp.WithString("direction", mcp.Description("local_to_world (default) or world_to_local; l2w and w2l are accepted")),
		mcp.WithString("preset", mcp.Description("Name of a preset parent transform (see list_presets)")),
		mcp.WithString("position", mcp.Description(`Parent position "x,y,z" (overrides the preset)`)),
		mcp.WithString("rotation", mcp.Description(`Parent Euler rotation in degrees "x,y,z" (overrides the preset)`)),
		mcp.WithString("scale", mcp.Description(`Parent scale "x,y,z" (overrides the preset)`)),
		mcp.WithNumber("precision", mcp.Description("Fractional digits in the formatted result, 2 to 30 (default 15)")),
		mcp.WithOutputSchema[ConvertOutput](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	// TOOL: validate
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Check whether a conversion is defined for a parent transform (world_to_local needs non-zero scale)."),
		mcp.WithString("direction", mcp.Description("local_to_world or world_to_local (default world_to_local)")),
		mcp.WithString("preset", mcp.Description("Name of a preset parent transform")),
		mcp.WithString("position", mcp.Description(`Parent position "x,y,z"`)),
		mcp.WithString("rotation", mcp.Description(`Parent Euler rotation in degrees "x,y,z"`)),
		mcp.WithString("scale", mcp.Description(`Parent scale "x,y,z"`)),
		mcp.WithOutputSchema[domain.ValidationResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: list_presets
	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the named parent transforms available to convert and validate."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		presets, err := s.listPresets(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list presets failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(presets)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ConvertOutput, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return ConvertOutput{}, err
	}

	req, pointSet, err := s.buildRequest(ctx, in)
	if err != nil {
		return ConvertOutput{}, err
	}
	if !pointSet {
		return ConvertOutput{}, errors.New("point is required")
	}
	if err := domain.ValidatePrecision(req.Precision); err != nil {
		return ConvertOutput{}, err
	}
	if err := domain.CheckBounds(req); err != nil {
		return ConvertOutput{}, err
	}

	var res domain.ConversionResult
	if s.recorder != nil {
		res, err = s.recorder.Convert(ctx, req)
	} else {
		res, err = s.converter.Convert(ctx, req)
	}
	if err != nil {
		s.logger.Debug("MCP Convert: Rejected", "direction", req.Direction, "err", err)
		return ConvertOutput{}, fmt.Errorf("convert failed (%s): %w", domain.ErrorKind(err), err)
	}
	return newConvertOutput(req.Direction, res), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ValidationResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	req, _, err := s.buildRequest(ctx, in)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if in.Direction == "" {
		req.Direction = domain.WorldToLocal
	}
	return s.converter.Validate(ctx, req.Parent, req.Direction), nil
}

// buildRequest resolves the parent from the preset (if any) and applies the
// explicit overrides on top. pointSet reports whether a point came from
// either source.
func (s *Server) buildRequest(ctx context.Context, in toolArgs) (req domain.ConversionRequest, pointSet bool, err error) {
	req = domain.ConversionRequest{
		Direction: domain.LocalToWorld,
		Parent:    domain.IdentityTransform(),
		Precision: domain.DefaultPrecision,
	}

	if in.Preset != "" {
		p, err := s.getPreset(ctx, in.Preset)
		if err != nil {
			return req, false, err
		}
		req.Parent = p.Transform
		if p.Direction != "" {
			req.Direction = p.Direction
		}
		if p.Input != nil {
			req.Point = *p.Input
			pointSet = true
		}
	}

	if in.Direction != "" {
		d, err := domain.ParseDirection(in.Direction)
		if err != nil {
			return req, false, err
		}
		req.Direction = d
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  *domain.Vector3
	}{
		{"position", in.Position, &req.Parent.Position},
		{"rotation", in.Rotation, &req.Parent.Rotation},
		{"scale", in.Scale, &req.Parent.Scale},
		{"point", in.Point, &req.Point},
	} {
		if f.raw == "" {
			continue
		}
		v, err := domain.ParseVector3(f.raw)
		if err != nil {
			return req, false, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
		if f.name == "point" {
			pointSet = true
		}
	}

	if in.Precision != nil {
		req.Precision = *in.Precision
	}
	return req, pointSet, nil
}

func (s *Server) getPreset(ctx context.Context, name string) (domain.Preset, error) {
	if s.presets == nil {
		return domain.Preset{}, fmt.Errorf("%w: %q", domain.ErrPresetNotFound, name)
	}
	return s.presets.GetPreset(ctx, name)
}

func (s *Server) listPresets(ctx context.Context) ([]domain.Preset, error) {
	if s.presets == nil {
		return []domain.Preset{}, nil
	}
	return s.presets.ListPresets(ctx)
}

func (s *Server) registerResources() {
	// EXPOSE: worldforge://presets
	s.mcpServer.AddResource(mcp.NewResource(PresetsURI, "Preset Parent Transforms",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		presets, err := s.listPresets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list presets: %w", err)
		}
		return jsonResource(PresetsURI, presets)
	})

	if s.recorder == nil {
		return
	}

	// EXPOSE: worldforge://history
	s.mcpServer.AddResource(mcp.NewResource(HistoryURI, "Conversion History",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := s.recorder.History(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return jsonResource(HistoryURI, entries)
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
