package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo carries build-time version metadata set via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var buildInfo = BuildInfo{
	Version:   "dev",
	Commit:    "unknown",
	BuildDate: "unknown",
}

// rootCmd is the Cobra root command for browsd. Running browsd with no
// subcommand starts the HTTP server.
var rootCmd = &cobra.Command{
	Use:   "browsd",
	Short: "Expose a headless browser page as MCP tools",
	Long: `browsd exposes one headless Chromium page as a set of MCP tools
(open_url, click, fill_form, get_text) over JSON-RPC on HTTP, so LLM
frontends can browse the web without their own automation stack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	// The default command shares serve's flags.
	addServeFlags(rootCmd)
}

// Execute runs the CLI with the given build info.
func Execute(info BuildInfo) error {
	if info.Version != "" {
		buildInfo = info
	}
	return rootCmd.Execute()
}
