package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proteus-audio/proteus/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running editor instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			client, err := ipc.Dial(cfg.SocketPath())
			if err != nil {
				fmt.Fprintln(out, "Editor is not running")
				return nil
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return fmt.Errorf("query status: %w", err)
			}
			fmt.Fprintln(out, renderTable(
				[]string{"PID", "Windows", "Socket"},
				[][]string{{strconv.Itoa(status.PID), strconv.Itoa(status.Windows), cfg.SocketPath()}},
				[]columnAlignment{alignRight, alignRight, alignLeft},
				isTerminal(out),
			))
			return nil
		},
	}
}
