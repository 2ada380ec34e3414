// Package config loads the browsd configuration file.
//
// The file is YAML or JSON (auto-detected by extension) with three sections:
//
//	server:
//	  host: 127.0.0.1
//	  port: 3333
//	  path: /
//	  heartbeatInterval: 10   # seconds
//	browser:
//	  headless: true
//	  timeout: 30000          # milliseconds
//	  install: false
//	logging:
//	  level: info
//	  format: text
//
// Command-line flags override file values; the file overrides built-in
// defaults.
package config
