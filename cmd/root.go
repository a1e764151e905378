package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailfold application
var rootCmd = &cobra.Command{
	Use:   "mailfold",
	Short: "Gmail search and mailbox tools for AI assistants",
	Long: `mailfold exposes Gmail search, reading, and mailbox management as
MCP (Model Context Protocol) tools for AI assistants.

It can run as:
  - An MCP server over stdio or streamable HTTP (default)
  - A one-shot CLI search against a Gmail account`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailfold version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mailfold version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mailfold version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
