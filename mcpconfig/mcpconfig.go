// Package mcpconfig loads MCP server definition files.
//
// A definition file maps server names to launch configurations under an
// "mcpServers" key, the same shape used by .mcp.json files. JSON, YAML, and
// TOML are supported, selected by file extension.
package mcpconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/mcpcall/mcpsession"
)

// Sentinel errors for definition lookups.
var (
	// ErrServerNotFound indicates the named server is not in the file.
	ErrServerNotFound = errors.New("server not defined")

	// ErrUnsupportedFormat indicates the file extension is not a known
	// config format.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Server is one launchable MCP server definition.
type Server struct {
	// Type specifies the transport type. Only "stdio" servers can be
	// launched; empty defaults to "stdio".
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`

	// Command is the executable to run.
	Command string `json:"command" yaml:"command" toml:"command"`

	// Args are command-line arguments, order preserved.
	Args []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args"`

	// Env contains environment variables for the server.
	// Values support ${VAR} and ${VAR:-default} expansion.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env"`

	// Dir is the working directory for the server.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir"`
}

// File is a parsed server definition file.
type File struct {
	MCPServers map[string]*Server `json:"mcpServers" yaml:"mcpServers" toml:"mcpServers"`
}

// Load reads and parses a definition file. The format is chosen by
// extension: .json, .yaml/.yml, or .toml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &f, nil
}

// Server returns the named server definition.
func (f *File) Server(name string) (*Server, error) {
	s, ok := f.MCPServers[name]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %q", ErrServerNotFound, name)
	}
	return s, nil
}

// Names returns the defined server names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.MCPServers))
	for name := range f.MCPServers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SessionConfig converts the definition into a launchable session config,
// expanding environment references in env values.
func (s *Server) SessionConfig() (mcpsession.Config, error) {
	if s.Type != "" && s.Type != "stdio" {
		return mcpsession.Config{}, fmt.Errorf("server type %q is not launchable over stdio", s.Type)
	}
	if s.Command == "" {
		return mcpsession.Config{}, fmt.Errorf("server definition has no command")
	}

	cfg := mcpsession.Config{
		Command: s.Command,
		Args:    append([]string(nil), s.Args...),
		Dir:     s.Dir,
	}
	if len(s.Env) > 0 {
		cfg.Env = make(map[string]string, len(s.Env))
		for k, v := range s.Env {
			cfg.Env[k] = expandEnv(v)
		}
	}
	return cfg, nil
}

// expandEnv resolves ${VAR} and ${VAR:-default} references.
func expandEnv(s string) string {
	return os.Expand(s, func(ref string) string {
		name, def, hasDefault := strings.Cut(ref, ":-")
		if v := os.Getenv(name); v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		return ""
	})
}
