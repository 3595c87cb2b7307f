// Package mcpserver exposes the scoring engine as a single Model Context
// Protocol tool, so AI assistants can request an architecture
// recommendation the same way the CLI does, without shelling out.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/internal/contextio"
	"github.com/archfit/archfit/internal/engine"
	"github.com/archfit/archfit/internal/scoring"
	"github.com/spf13/afero"
)

// ToolParams is the input schema for the score_architecture tool: paths
// to the catalog and application-context documents, plus any answers to
// clarification questions the caller already collected out of band.
type ToolParams struct {
	CatalogPath string            `json:"catalog_path"`
	ContextPath string            `json:"context_path"`
	Answers     map[string]string `json:"answers,omitempty"`
}

// New builds an MCP server named "archfit" exposing score_architecture.
// The server is stateless: every call re-reads the catalog and context
// from disk, so it never caches anything between requests.
func New(version string) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{Name: "archfit", Version: version}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "score_architecture",
		Description: "Score reference cloud architectures against an application context and return ranked recommendations with explanations.",
	}, scoreArchitectureHandler())

	return server
}

func scoreArchitectureHandler() mcpsdk.ToolHandlerFor[ToolParams, ScoreResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[ToolParams]) (*mcpsdk.CallToolResultFor[ScoreResponse], error) {
		args := params.Arguments

		if args.CatalogPath == "" || args.ContextPath == "" {
			return nil, fmt.Errorf("catalog_path and context_path are required")
		}

		fs := afero.NewOsFs()
		catalog, warnings, err := catalogio.Load(fs, args.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}

		appCtx, err := contextio.Load(fs, args.ContextPath)
		if err != nil {
			return nil, fmt.Errorf("load application context: %w", err)
		}

		eng, err := engine.New(catalog, scoring.DefaultConfig)
		if err != nil {
			return nil, fmt.Errorf("build engine: %w", err)
		}

		result, err := eng.Score(appCtx, args.Answers)
		if err != nil {
			return nil, fmt.Errorf("score: %w", err)
		}

		resp := ScoreResponse{Result: result, CatalogWarnings: warningStrings(warnings)}
		summary, _ := json.Marshal(resp)
		return &mcpsdk.CallToolResultFor[ScoreResponse]{
			StructuredContent: resp,
			Content:           []mcpsdk.Content{&mcpsdk.TextContent{Text: string(summary)}},
		}, nil
	}
}

func warningStrings(warnings []catalogio.Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, fmt.Sprintf("%s: %s", w.ArchitectureID, w.Reason))
	}
	return out
}
