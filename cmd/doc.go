// Package cmd implements the command-line interface for mailfold.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide Gmail tools for AI assistants
//   - search: Run a one-shot Gmail search and print the results
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
