package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// ExportCmd implements the taskdeck export command.
type ExportCmd struct {
	flags *Flags
	app   *taskdeck.App

	output string
}

// NewExportCmd creates a new export command.
func NewExportCmd(flags *Flags, app *taskdeck.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application.
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write all tasks as a JSON array",
		UsageText: "taskdeck export [-o <file>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	tasks := cmd.app.Tasks.List()

	if cmd.output == "" {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, tasks)
	}

	if err := os.MkdirAll(filepath.Dir(cmd.output), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(cmd.output)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := iojson.WriteWith(f, c.Root().ErrWriter, tasks); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "exported %d tasks to %s\n", len(tasks), cmd.output)
	return nil
}
