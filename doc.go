// Package mcpcall provides a single-shot test harness for MCP servers.
//
// mcpcall launches an MCP (Model Context Protocol) server as a child process,
// performs the initialize handshake over the server's stdin/stdout, invokes
// exactly one tool, and prints the result as a single line of canonical JSON.
// The output is designed for byte-for-byte comparison in automated test
// assertions: repeated runs against the same server state produce identical
// output.
//
// Each subpackage can be used independently:
//
//   - mcpsession: scoped session lifecycle over a spawned-process transport
//   - canonjson: deterministic canonical JSON rendering
//   - mcpconfig: MCP server definition files (JSON, YAML, TOML)
//   - harness: single-run orchestration and the error taxonomy
//   - cli: the mcpcall command surface
//
// # Quick Start
//
//	mcpcall --server-cmd ./my-server --tool echo --tool-args '{"message":"hi"}'
//
// On success the tool result is written to stdout as one line of canonical
// JSON and the process exits 0. On any failure a single "ERROR: ..." line is
// written to stderr and the process exits 1. Nothing is ever written to
// stdout on failure.
//
// # Design Philosophy
//
//   - One tool call per invocation, then terminate
//   - Strictly sequential: launch, handshake, call, serialize, report
//   - No retries and no timeouts; bounding run time belongs to the
//     enclosing test runner
//   - The child process and both of its streams are released on every
//     exit path
package mcpcall
