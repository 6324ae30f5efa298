// Package main provides the choco CLI for composing and running SELECT queries.
//
// The CLI supports:
//   - render: Build a query from flags and print the SQL
//   - query: Build, execute and print the result as YAML
//   - config show: Print the effective configuration
//   - version: Print version information
//
// Configuration is read from choco.yaml (auto-discovered upwards from the
// working directory), CHOCO_* environment variables and the legacy
// DB_POSTGRES_* variables.
//
// Usage:
//
//	choco [flags] <command>
package main

func main() {
	Execute()
}
