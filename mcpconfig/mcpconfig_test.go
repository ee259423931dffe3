package mcpconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "servers.json",
			content: `{
  "mcpServers": {
    "echo": {"command": "echo-server", "args": ["--strict"], "env": {"LOG": "debug"}}
  }
}`,
		},
		{
			name: "yaml",
			file: "servers.yaml",
			content: `mcpServers:
  echo:
    command: echo-server
    args: ["--strict"]
    env:
      LOG: debug
`,
		},
		{
			name: "yml extension",
			file: "servers.yml",
			content: `mcpServers:
  echo:
    command: echo-server
    args: ["--strict"]
    env:
      LOG: debug
`,
		},
		{
			name: "toml",
			file: "servers.toml",
			content: `[mcpServers.echo]
command = "echo-server"
args = ["--strict"]

[mcpServers.echo.env]
LOG = "debug"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			srv, err := f.Server("echo")
			if err != nil {
				t.Fatalf("Server() error = %v", err)
			}
			if srv.Command != "echo-server" {
				t.Errorf("Command = %q, want %q", srv.Command, "echo-server")
			}
			if len(srv.Args) != 1 || srv.Args[0] != "--strict" {
				t.Errorf("Args = %v, want [--strict]", srv.Args)
			}
			if srv.Env["LOG"] != "debug" {
				t.Errorf("Env[LOG] = %q, want %q", srv.Env["LOG"], "debug")
			}
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "servers.ini", "[mcpServers]\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject unknown extensions")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "servers.json", `{"mcpServers": `)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail for malformed content")
	}
}

func TestFile_ServerNotFound(t *testing.T) {
	f := &File{MCPServers: map[string]*Server{"a": {Command: "a"}}}

	_, err := f.Server("b")
	if err == nil {
		t.Fatal("Server() should fail for undefined names")
	}
}

func TestFile_Names(t *testing.T) {
	f := &File{MCPServers: map[string]*Server{
		"zeta": {Command: "z"},
		"echo": {Command: "e"},
	}}

	names := f.Names()
	if len(names) != 2 || names[0] != "echo" || names[1] != "zeta" {
		t.Errorf("Names() = %v, want [echo zeta]", names)
	}
}

func TestServer_SessionConfig(t *testing.T) {
	srv := &Server{
		Command: "echo-server",
		Args:    []string{"-v"},
		Env:     map[string]string{"TOKEN": "fixed"},
		Dir:     "/work",
	}

	cfg, err := srv.SessionConfig()
	if err != nil {
		t.Fatalf("SessionConfig() error = %v", err)
	}
	if cfg.Command != "echo-server" {
		t.Errorf("Command = %q", cfg.Command)
	}
	if cfg.Dir != "/work" {
		t.Errorf("Dir = %q", cfg.Dir)
	}
	if cfg.Env["TOKEN"] != "fixed" {
		t.Errorf("Env[TOKEN] = %q", cfg.Env["TOKEN"])
	}
}

func TestServer_SessionConfig_EnvExpansion(t *testing.T) {
	t.Setenv("MCPCONFIG_TEST_TOKEN", "secret")

	srv := &Server{
		Command: "srv",
		Env: map[string]string{
			"SET":      "${MCPCONFIG_TEST_TOKEN}",
			"FALLBACK": "${MCPCONFIG_TEST_UNSET:-fallback}",
			"EMPTY":    "${MCPCONFIG_TEST_UNSET}",
		},
	}

	cfg, err := srv.SessionConfig()
	if err != nil {
		t.Fatalf("SessionConfig() error = %v", err)
	}
	if cfg.Env["SET"] != "secret" {
		t.Errorf("Env[SET] = %q, want %q", cfg.Env["SET"], "secret")
	}
	if cfg.Env["FALLBACK"] != "fallback" {
		t.Errorf("Env[FALLBACK] = %q, want %q", cfg.Env["FALLBACK"], "fallback")
	}
	if cfg.Env["EMPTY"] != "" {
		t.Errorf("Env[EMPTY] = %q, want empty", cfg.Env["EMPTY"])
	}
}

func TestServer_SessionConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		srv  Server
	}{
		{name: "http transport", srv: Server{Type: "http", Command: "srv"}},
		{name: "sse transport", srv: Server{Type: "sse", Command: "srv"}},
		{name: "no command", srv: Server{Type: "stdio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.srv.SessionConfig(); err == nil {
				t.Error("SessionConfig() should fail")
			}
		})
	}
}
