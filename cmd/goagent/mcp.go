package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/goagent/toolkit"
	"github.com/tailored-agentic-units/goagent/tools"
)

const (
	serverName    = "goagent"
	serverVersion = "0.1.0"
	inputArgument = "input"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the built-in tools to MCP clients over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			// stdout carries the protocol; events go to stderr.
			obs, err := a.newObserver(cmd, cfg.Observer)
			if err != nil {
				return err
			}

			reg := tools.NewRegistry(obs)
			if err := toolkit.Register(reg, &cfg.Tools); err != nil {
				return err
			}
			return server.ServeStdio(newMCPServer(reg))
		},
	}
}

// newMCPServer exposes every registered tool as an MCP tool taking a single
// string argument named "input".
func newMCPServer(reg *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))
	for _, def := range reg.List() {
		s.AddTool(mcp.NewTool(def.Name,
			mcp.WithDescription(def.Description),
			mcp.WithString(inputArgument, mcp.Required(), mcp.Description("Free-text tool argument")),
		), toolHandler(reg, def.Name))
	}
	return s
}

func toolHandler(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		input, _ := args[inputArgument].(string)
		return mcp.NewToolResultText(reg.Dispatch(ctx, name, input)), nil
	}
}

