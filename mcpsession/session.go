// Package mcpsession provides a scoped client session to an MCP server
// spawned as a child process.
//
// A session owns exactly one child process and its two stdio streams. Open
// launches the process and performs the initialize handshake; the returned
// session accepts tool calls until Close releases the process handle and
// both streams. Close is safe on every exit path and in every state.
//
// The session is strictly sequential: one outstanding tool call at a time,
// no retries, and no timeouts of its own. A hung server blocks the caller
// until the surrounding context is cancelled or the process tree is killed
// externally.
package mcpsession

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Client identity announced during the initialize handshake.
const (
	clientName    = "mcpcall"
	clientVersion = "0.1.0"
)

// Session lifecycle state.
type state int

const (
	stateUnstarted state = iota
	stateHandshaking
	stateReady
	stateFailed
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateUnstarted:
		return "unstarted"
	case stateHandshaking:
		return "handshaking"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one live MCP server process plus its duplex stdio streams.
// Tool calls are only accepted in the ready state, which is reached when
// the handshake completes without error.
type Session struct {
	cfg   Config
	state state
	cs    *mcp.ClientSession
}

// Open launches the configured server process and performs the initialize
// handshake. On success the returned session is ready for exactly-once tool
// calls; the caller must Close it on every exit path.
//
// Launch failures (missing executable, permission denied) wrap ErrLaunch
// and occur before any protocol traffic. Handshake failures (server exited
// early, malformed or absent response, protocol mismatch) wrap ErrHandshake;
// the child's streams are released by the underlying transport either way.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	// Resolve the executable up front so a missing or non-executable
	// server surfaces as a launch failure, not a handshake failure.
	if _, err := exec.LookPath(cfg.Command); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	cmd := exec.Command(cfg.Command, cfg.Args...)
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range cfg.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	// The child's stderr is its own diagnostic channel; pass it through
	// untouched. Stdin and stdout belong to the transport.
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	s := &Session{cfg: cfg, state: stateHandshaking}
	slog.Debug("launching MCP server",
		slog.String("command", cfg.Command),
		slog.Any("args", cfg.Args))

	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}, nil)

	cs, err := client.Connect(ctx, mcp.NewCommandTransport(cmd), nil)
	if err != nil {
		s.state = stateFailed
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	s.cs = cs
	s.state = stateReady
	slog.Debug("initialize handshake complete")
	return s, nil
}

// CallTool sends one tool-call request and waits for the single correlated
// response. The arguments must already be a decoded JSON-compatible mapping.
//
// A server-reported application-level tool failure is returned as a normal
// result with IsError set; only transport- and protocol-level failures
// (stream closed mid-call, malformed response, unanswered call) produce an
// error, wrapping ErrInvocation.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if s.state != stateReady {
		return nil, fmt.Errorf("%w: session is %s, not ready", ErrInvocation, s.state)
	}

	slog.Debug("calling tool", slog.String("tool", name))
	res, err := s.cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: tool %q: %w", ErrInvocation, name, err)
	}
	return res, nil
}

// Close releases the session: both streams are closed and the child process
// is allowed to terminate. Safe to call in any state and more than once;
// calls after the first are no-ops.
func (s *Session) Close() error {
	if s == nil || s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	if s.cs == nil {
		return nil
	}
	err := s.cs.Close()
	slog.Debug("session closed")
	return err
}
