// Package cli implements the browsd command-line interface.
//
// Commands:
//
//	browsd serve    Start the MCP HTTP server (default)
//	browsd stdio    Run the MCP server over stdin/stdout
//	browsd version  Show version information
package cli
