// Package mcpserver exposes the template pipeline to MCP clients over
// stdio. Tools report key names and sync status only; source values
// never cross the wire.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xmazu/envsample/internal/audit"
	"github.com/xmazu/envsample/internal/config"
	"github.com/xmazu/envsample/internal/syncer"
)

func Run(ctx context.Context) error {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "envsample",
		Version: "0.1.0",
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "example_sync",
		Description: "Sync the project's .env.example with the key names in its env files (.env, .env.local or as configured). Builds the template when missing, otherwise appends new keys under a timestamped header and warns on keys no source defines. Values are never copied; the template only ever contains KEY= lines. Returns the path and what changed.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Workdir string `json:"workdir" jsonschema:"project directory (default: current)"`
		DryRun  bool   `json:"dry_run" jsonschema:"compute the result without writing the template"`
	}) (*mcpsdk.CallToolResult, any, error) {
		res, err := runPipeline(args.Workdir)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}

		if res.Changed && !args.DryRun {
			if err := os.WriteFile(res.OutputPath, []byte(res.Content), 0644); err != nil {
				return errorResult(err.Error()), nil, nil
			}
			op := audit.OpPatch
			if res.Built {
				op = audit.OpBuild
			}
			if err := audit.Log(args.Workdir, op,
				audit.WithOutput(res.OutputPath),
				audit.WithAdded(res.Added),
				audit.WithFlagged(res.Flagged),
			); err != nil {
				// stdout carries the protocol; warnings go to stderr.
				fmt.Fprintf(os.Stderr, "Warning: could not write run log: %v\n", err)
			}
		}

		out := map[string]any{
			"path":    res.OutputPath,
			"built":   res.Built,
			"changed": res.Changed,
			"keys":    len(res.Keys),
			"added":   res.Added,
			"flagged": res.Flagged,
		}
		if args.DryRun {
			out["content"] = res.Content
		}
		return successResult(out), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "example_check",
		Description: "Check whether the project's .env.example is in sync with its env files, without writing anything. Reports keys that would be appended, template keys no source defines, and template lines that look like real secrets. Use before committing or in review flows.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Workdir string `json:"workdir" jsonschema:"project directory (default: current)"`
	}) (*mcpsdk.CallToolResult, any, error) {
		res, err := runPipeline(args.Workdir)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}

		findings := make([]map[string]any, 0, len(res.Findings))
		for _, f := range res.Findings {
			findings = append(findings, map[string]any{
				"pattern": f.Pattern.Name,
				"line":    f.Line,
			})
		}
		return successResult(map[string]any{
			"in_sync":      !res.Changed,
			"path":         res.OutputPath,
			"missing_keys": res.Added,
			"unknown_keys": res.Unknown,
			"findings":     findings,
		}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "source_keys",
		Description: "List the merged key names across the project's env files, in the order the template would use. Returns key names only, never values. Use to see what configuration a project expects.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Workdir string `json:"workdir" jsonschema:"project directory (default: current)"`
	}) (*mcpsdk.CallToolResult, any, error) {
		res, err := runPipeline(args.Workdir)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		return successResult(map[string]any{
			"keys":  res.Keys,
			"count": len(res.Keys),
		}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "audit_recent",
		Description: "Show recent template runs from the audit log: builds, patches and checks with their added and flagged keys. Use to see when and how the template last changed.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Count   int    `json:"count" jsonschema:"number of entries to return (default: 10)"`
		Workdir string `json:"workdir" jsonschema:"directory holding the audit log (default: current)"`
	}) (*mcpsdk.CallToolResult, any, error) {
		count := args.Count
		if count <= 0 {
			count = 10
		}

		entries, err := audit.Entries(args.Workdir, count)
		if err != nil {
			if err == audit.ErrNoAuditLog {
				return successResult(map[string]any{"entries": []any{}, "message": "No audit log found"}), nil, nil
			}
			return errorResult(err.Error()), nil, nil
		}
		return successResult(map[string]any{"entries": entries}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "audit_verify",
		Description: "Verify the integrity of the audit log chain. Checks that each entry's prev_hash matches the hash of the previous entry. Reports any breaks in the chain.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Workdir string `json:"workdir" jsonschema:"directory holding the audit log (default: current)"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := audit.Verify(args.Workdir)
		if err != nil {
			if err == audit.ErrNoAuditLog {
				return successResult(map[string]any{"verified": false, "message": "No audit log found"}), nil, nil
			}
			return errorResult(err.Error()), nil, nil
		}

		msg := "Audit log chain integrity verified"
		if len(result.Breaks) > 0 {
			msg = "Chain breaks detected - log may have been tampered with"
		}
		return successResult(map[string]any{
			"verified":      len(result.Breaks) == 0,
			"total_entries": result.TotalEntries,
			"breaks":        result.Breaks,
			"message":       msg,
		}), nil, nil
	})

	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

// runPipeline resolves workdir's config and computes a sync without
// writing anything.
func runPipeline(workdir string) (*syncer.Result, error) {
	if workdir == "" {
		workdir = "."
	}
	project, _, err := config.LoadProject(workdir)
	if err != nil {
		return nil, err
	}
	opts, err := syncer.ForProject(workdir, project)
	if err != nil {
		return nil, err
	}
	return syncer.Sync(opts)
}

func successResult(data any) *mcpsdk.CallToolResult {
	b, _ := json.Marshal(data)
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(b)}},
	}
}

func errorResult(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "error: " + msg}},
		IsError: true,
	}
}
