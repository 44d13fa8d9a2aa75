// Package cli provides the interactive review command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher pings the server and shows whether it is reachable.
//
// Commands: register, login, profile, models, review <file> [model],
// logout, help, exit.
package cli
