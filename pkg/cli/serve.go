package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/browsd/browsd/pkg/browser"
	"github.com/browsd/browsd/pkg/config"
	"github.com/browsd/browsd/pkg/logging"
	"github.com/browsd/browsd/pkg/mcp"
)

// serveCmd is the Cobra command for "browsd serve".
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP HTTP server",
	Long: `Start the MCP server over HTTP.

POST / accepts JSON-RPC requests (initialize, tools/list, tools/call,
notifications). GET / opens an SSE heartbeat stream. The browser session is
launched lazily on the first tool call and closed on shutdown.`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

// addServeFlags registers the serve flags on cmd. The root command reuses
// them so plain "browsd" behaves like "browsd serve".
func addServeFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("config", "", "Path to browsd.yaml (flags override file values)")
	fs.String("host", "", "Interface to bind (default 127.0.0.1)")
	fs.Int("port", 0, "TCP port to listen on (default 3333)")
	fs.Bool("headless", true, "Run Chromium headless")
	fs.Bool("install-browsers", false, "Run Playwright browser installation before first launch")
	fs.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	fs.String("log-format", "", "Log format: text or json (default text)")
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	flags := cmd.Flags()
	cfg := config.Default()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(loaded)
	}

	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("headless") {
		headless, _ := flags.GetBool("headless")
		cfg.Browser.Headless = &headless
	}
	if flags.Changed("install-browsers") {
		cfg.Browser.Install, _ = flags.GetBool("install-browsers")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format, _ = flags.GetString("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newComponents builds the logger, browser manager, and MCP server from the
// effective configuration.
func newComponents(cfg *config.File) (*mcp.Server, *browser.Manager, *slog.Logger) {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	})

	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}

	mgr := browser.NewManager(browser.Config{
		Headless: headless,
		Timeout:  cfg.Browser.Timeout,
		Install:  cfg.Browser.Install,
	})
	mgr.SetLogger(log)

	mcpCfg := mcp.DefaultConfig()
	mcpCfg.Host = cfg.Server.Host
	mcpCfg.Port = cfg.Server.Port
	mcpCfg.Path = cfg.Server.Path
	mcpCfg.HeartbeatInterval = time.Duration(cfg.Server.HeartbeatInterval) * time.Second

	server := mcp.NewServer(mcpCfg, mgr)
	server.SetLogger(log)

	return server, mgr, log
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server, mgr, log := newComponents(cfg)

	if err := server.Start(); err != nil {
		return err
	}

	// Block until interrupted, then release the HTTP listener and the
	// browser session.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	if err := server.Stop(); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	return mgr.Shutdown()
}
