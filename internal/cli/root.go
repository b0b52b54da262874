// Package cli implements the world-archiver command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command. It takes an optional server
// directory and performs one backup of that server's world.
func NewRootCmd(stdout, stderr io.Writer, files Files) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world-archiver [server-dir]",
		Short: "Snapshot a game server's world and prune the oldest backup",
		Long: `world-archiver copies the world named in server.properties into
backups/<world>/<YYYY-MM-DD_HH.MM.SS>/ and, when more backups exist than
the configured limit, deletes the oldest one.

The server directory defaults to the current directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, cmd.OutOrStdout(), dir, files)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

// Run executes the command with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, files Files) int {
	root := NewRootCmd(stdout, stderr, files)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "world-archiver: %v\n", err)
		return 1
	}
	return 0
}

// Execute runs the CLI with the process arguments and stdio. Canceling
// ctx aborts a copy in progress and removes its partial snapshot.
func Execute(ctx context.Context) int {
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr, DefaultFiles())
}
