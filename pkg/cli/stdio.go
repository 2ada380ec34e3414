package cli

import (
	"github.com/spf13/cobra"

	"github.com/browsd/browsd/pkg/mcp"
)

// stdioCmd is the Cobra command for "browsd stdio".
var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Run the MCP server over stdin/stdout for AI assistants",
	Long: `Run the Model Context Protocol server in stdio mode.

Reads newline-delimited JSON-RPC from stdin and writes responses to stdout.
This is how AI assistants (Claude Desktop, Cursor, etc.) spawn browsd
directly:

  {
    "mcpServers": {
      "browsd": {
        "command": "browsd",
        "args": ["stdio"]
      }
    }
  }

Logs go to stderr so stdout stays clean for the protocol.`,
	RunE: runStdio,
}

func init() {
	addServeFlags(stdioCmd)
	rootCmd.AddCommand(stdioCmd)
}

func runStdio(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server, mgr, log := newComponents(cfg)

	stdio := mcp.NewStdioServer(server)
	stdio.SetLogger(log)

	// Blocks until EOF on stdin.
	runErr := stdio.Run()

	if err := mgr.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
