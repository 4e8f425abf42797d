package cli

import (
	"github.com/spf13/cobra"
)

// Execute runs the proteus command line.
func Execute(version string) error {
	return newRootCommand(version).Execute()
}

func newRootCommand(version string) *cobra.Command {
	var configFlag string

	ctx := newCommandContext(version, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "proteus [project]",
		Short:         "Proteus audio project editor",
		Long:          "Opens the editor. A project descriptor or project directory given as argument is opened in a new window; when an editor is already running the request is handed to it: the project, or a request for an empty window.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var project string
			if len(args) == 1 {
				project = args[0]
			}
			return runEditor(ctx, project, cmd.OutOrStdout())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			ctx.syncLogger()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand(ctx))

	return rootCmd
}
