package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zxdong262/task-runner/internal/cli/client"
)

// NewRootCommand builds the CLI entry point with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "task-runner-cli",
		Short: "Client for the task runner HTTP API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			server, _ := cmd.Flags().GetString("server")
			user, _ := cmd.Flags().GetString("user")
			pass, _ := cmd.Flags().GetString("password")
			client.Configure(server, user, pass)
		},
	}

	rootCmd.PersistentFlags().StringP("server", "s", "", "Server base URL (default http://127.0.0.1:8080, env RUNNER_SERVER)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "Basic auth username (env RUNNER_USER)")
	rootCmd.PersistentFlags().StringP("password", "p", "", "Basic auth password (env RUNNER_PASSWORD)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}
