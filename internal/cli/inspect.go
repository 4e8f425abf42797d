package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/persist"
	"github.com/proteus-audio/proteus/internal/platform"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a saved project without opening the editor",
		Long:  "Loads the project whose descriptor (or project directory) is given and prints its tracks and referenced files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectProject(cmd.OutOrStdout(), args[0])
		},
	}
}

func inspectProject(out io.Writer, path string) error {
	path, err := absProjectPath(path)
	if err != nil {
		return err
	}
	dir, name, ok := platform.SplitProjectPath(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, model.ErrNotAProject)
	}

	tracks, found, err := persist.Load(dir, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: no project descriptor: %w", path, model.ErrNotAProject)
	}

	files := 0
	rows := make([][]string, 0)
	for _, t := range tracks {
		selection := "-"
		if t.Selection != nil {
			selection = strconv.Itoa(*t.Selection)
		}
		if len(t.Files) == 0 {
			rows = append(rows, []string{strconv.Itoa(t.ID), selection, "", "", "", ""})
			continue
		}
		for _, f := range t.Files {
			files++
			rows = append(rows, []string{
				strconv.Itoa(t.ID),
				selection,
				strconv.Itoa(f.ID),
				f.Name,
				f.Path,
				sourceSize(f.Path),
			})
		}
	}

	fmt.Fprintf(out, "Project %s\n", name)
	fmt.Fprintf(out, "Location %s\n", platform.ProjectDir(dir, name))
	fmt.Fprintf(out, "%d tracks, %d files\n", len(tracks), files)
	if len(rows) == 0 {
		return nil
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Track", "Selection", "File", "Name", "Source", "Size"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight},
		isTerminal(out),
	))
	return nil
}

func sourceSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return humanize.Bytes(uint64(info.Size()))
}
