// Package harness orchestrates one MCP tool call from launch to rendered
// result.
//
// A run is strictly sequential with a single attempt: launch the server,
// perform the initialize handshake, send one tool call, serialize the
// result, and return it as an Outcome. Any error from any stage aborts the
// run and propagates to the caller untouched; nothing is retried and the
// session is torn down on every path.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/randalmurphal/mcpcall/canonjson"
	"github.com/randalmurphal/mcpcall/mcpsession"
)

// Config describes one tool invocation.
type Config struct {
	// Server is the MCP server process to launch.
	Server mcpsession.Config

	// Tool is the name of the tool to invoke. Required.
	Tool string

	// ToolArgs is the raw JSON text of the tool arguments. Empty means
	// an empty object. Decoded before the server is launched.
	ToolArgs string

	// FailOnToolError treats a result with isError set as a run failure
	// instead of printable content.
	FailOnToolError bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tool == "" {
		return fmt.Errorf("tool name is required")
	}
	return c.Server.Validate()
}

// Outcome is the successful result of a run: one line of canonical JSON.
type Outcome struct {
	Text string
}

// toolSession is the slice of mcpsession.Session the runner needs.
type toolSession interface {
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	Close() error
}

// openSession is swapped out in tests.
var openSession = func(ctx context.Context, cfg mcpsession.Config) (toolSession, error) {
	return mcpsession.Open(ctx, cfg)
}

// Run performs one tool invocation and renders the result.
//
// Argument decoding happens first: if the raw arguments are not a valid
// JSON object the run fails with ErrArgument and the server process is
// never launched. The session is closed on every exit path.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	args, err := DecodeArgs(cfg.ToolArgs)
	if err != nil {
		return nil, err
	}

	sess, err := openSession(ctx, cfg.Server)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	res, err := sess.CallTool(ctx, cfg.Tool, args)
	if err != nil {
		return nil, err
	}

	if cfg.FailOnToolError && res.IsError {
		return nil, fmt.Errorf("%w: %s", ErrTool, toolErrorText(res))
	}

	text, err := canonjson.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	slog.Debug("run complete",
		slog.String("tool", cfg.Tool),
		slog.Int("result_bytes", len(text)),
		slog.Bool("tool_error", res.IsError))
	return &Outcome{Text: string(text)}, nil
}

// DecodeArgs parses raw JSON text into the structured arguments mapping.
// Empty input decodes as an empty object. Anything other than a single
// well-formed JSON object fails with ErrArgument.
func DecodeArgs(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: decode tool arguments: %w", ErrArgument, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: decode tool arguments: trailing data after JSON value", ErrArgument)
	}

	args, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: tool arguments must be a JSON object, got %s", ErrArgument, jsonKind(v))
	}
	return args, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown value"
	}
}

// toolErrorText extracts a diagnostic from an isError result body.
func toolErrorText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if t, ok := c.(*mcp.TextContent); ok && t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	if len(parts) == 0 {
		return "tool returned an error result"
	}
	return strings.Join(parts, "; ")
}
