package mcpsession

import (
	"fmt"
	"io"
)

// Config describes the MCP server process to launch.
type Config struct {
	// Command is the server executable. Required.
	Command string `json:"command" yaml:"command"`

	// Args are appended to the child argv in order.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env provides additional environment variables for the server
	// process, on top of the parent environment.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// Dir is the working directory for the server process.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Stderr receives the child's standard error stream. The harness
	// never interprets it. Default: the parent's standard error.
	Stderr io.Writer `json:"-" yaml:"-"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Command == "" {
		return fmt.Errorf("server command is required")
	}
	return nil
}
