// Package cli implements the mcpcall command surface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/randalmurphal/mcpcall/harness"
	"github.com/randalmurphal/mcpcall/mcpconfig"
	"github.com/randalmurphal/mcpcall/mcpsession"
)

// NewRootCmd creates the mcpcall root command.
//
// mcpcall is single-shot: the root command performs exactly one tool call
// and terminates. Success prints one line of canonical JSON on stdout and
// exits 0; any failure leaves stdout untouched and exits 1 with a single
// diagnostic line on stderr (printed by main).
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcpcall",
		Short: "Call one MCP tool over a spawned stdio server",
		Long: "mcpcall launches an MCP server as a child process, performs the initialize\n" +
			"handshake, invokes a single tool, and prints the result as one line of\n" +
			"canonical JSON suitable for exact-text assertions in automated tests.",
		// Errors are reported once, by main, as an ERROR: line.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCall,
	}

	cmd.Version = version
	cmd.SetVersionTemplate(fmt.Sprintf("mcpcall version %s\n", version))

	cmd.Flags().String("server-cmd", "", "Executable to launch as the MCP server")
	cmd.Flags().StringArray("server-arg", nil, "Argument appended to the server's argv (repeatable, order preserved)")
	cmd.Flags().String("tool", "", "Tool name to invoke")
	cmd.Flags().String("tool-args", "{}", "JSON object text passed as the tool arguments")
	cmd.Flags().String("mcp-config", "", "Server definition file (.json, .yaml, or .toml)")
	cmd.Flags().String("server", "", "Server name to select from the definition file")
	cmd.Flags().Bool("fail-on-tool-error", false, "Exit 1 when the server marks the tool result as an error")
	cmd.Flags().Bool("verbose", false, "Enable debug logging on stderr")

	_ = cmd.MarkFlagRequired("tool")

	return cmd
}

func runCall(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	setupLogging(verbose, cmd.ErrOrStderr())

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	out, err := harness.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.Text)
	return nil
}

// buildConfig assembles the run configuration from flags, resolving a
// server definition file first and letting explicit flags override it.
func buildConfig(flags *pflag.FlagSet) (harness.Config, error) {
	serverCmd, _ := flags.GetString("server-cmd")
	serverArgs, _ := flags.GetStringArray("server-arg")
	tool, _ := flags.GetString("tool")
	toolArgs, _ := flags.GetString("tool-args")
	configPath, _ := flags.GetString("mcp-config")
	serverName, _ := flags.GetString("server")
	failOnToolError, _ := flags.GetBool("fail-on-tool-error")

	var server mcpsession.Config

	switch {
	case configPath != "" && serverName == "":
		return harness.Config{}, fmt.Errorf("%w: --mcp-config requires --server to select a definition", harness.ErrArgument)
	case configPath == "" && serverName != "":
		return harness.Config{}, fmt.Errorf("%w: --server requires --mcp-config", harness.ErrArgument)
	case configPath != "":
		f, err := mcpconfig.Load(configPath)
		if err != nil {
			return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrArgument, err)
		}
		def, err := f.Server(serverName)
		if err != nil {
			return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrArgument, err)
		}
		server, err = def.SessionConfig()
		if err != nil {
			return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrArgument, err)
		}
	}

	// Explicit flags win over the definition file.
	if serverCmd != "" {
		server.Command = serverCmd
	}
	if len(serverArgs) > 0 {
		server.Args = serverArgs
	}

	if server.Command == "" {
		return harness.Config{}, fmt.Errorf("%w: --server-cmd is required", harness.ErrArgument)
	}

	return harness.Config{
		Server:          server,
		Tool:            tool,
		ToolArgs:        toolArgs,
		FailOnToolError: failOnToolError,
	}, nil
}

func setupLogging(verbose bool, w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
