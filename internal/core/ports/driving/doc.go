// Package driving defines the operations the CLI, the MCP server and the
// study TUI call into. Each method returns a typed result plus an error;
// failures carry a domain sentinel so adapters can report a stable code.
//
// Implementations live in internal/core/services.
package driving
