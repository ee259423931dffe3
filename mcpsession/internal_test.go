package mcpsession

import (
	"context"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Command: "/usr/bin/server"},
			wantErr: false,
		},
		{
			name: "valid config with args and env",
			cfg: Config{
				Command: "server",
				Args:    []string{"--port", "0"},
				Env:     map[string]string{"KEY": "value"},
			},
			wantErr: false,
		},
		{
			name:    "missing command",
			cfg:     Config{Args: []string{"--flag"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state state
		want  string
	}{
		{stateUnstarted, "unstarted"},
		{stateHandshaking, "handshaking"},
		{stateReady, "ready"},
		{stateFailed, "failed"},
		{stateClosed, "closed"},
		{state(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("state(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSession_CallToolBeforeHandshake(t *testing.T) {
	s := &Session{state: stateUnstarted}

	_, err := s.CallTool(context.Background(), "echo", nil)
	if err == nil {
		t.Fatal("CallTool() should fail before the handshake completed")
	}
}

func TestSession_CloseNil(t *testing.T) {
	var s *Session
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil session = %v, want nil", err)
	}
}
