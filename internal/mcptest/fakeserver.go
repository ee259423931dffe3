// Package mcptest provides a fake MCP server for exercising the harness in
// tests.
//
// Test binaries re-execute themselves as the server child process: TestMain
// calls RunChild first, and when the child-mode environment variable is set
// the process behaves as the requested fake server instead of running tests.
package mcptest

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ChildModeEnv selects the fake behavior when the test binary is
// re-executed as a child process.
const ChildModeEnv = "MCPCALL_TEST_CHILD"

// Recognized child modes.
const (
	// ModeServer serves MCP over stdio until the client disconnects.
	ModeServer = "server"

	// ModeExit exits immediately, simulating a server that dies before
	// answering initialize.
	ModeExit = "exit"
)

// RunChild dispatches on the child-mode environment variable. When it is
// set the fake behavior runs and the process exits without returning; when
// unset RunChild is a no-op. Call it at the top of TestMain.
func RunChild() {
	switch os.Getenv(ChildModeEnv) {
	case ModeServer:
		runServer()
		os.Exit(0)
	case ModeExit:
		os.Exit(0)
	}
}

func runServer() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mcpcall-fake-server",
		Version: "0.0.1",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "echo",
		Description: "echoes its arguments back as JSON text",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, nil, err
		}
		return textResult(string(data)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fixed",
		Description: "always answers the same value",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		return textResult("forty-two"), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fail",
		Description: "always reports an application-level tool error",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		res := textResult("kaboom")
		res.IsError = true
		return res, nil, nil
	})

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		os.Exit(1)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
