package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// ImportCmd implements the taskdeck import command.
type ImportCmd struct {
	flags *Flags
	app   *taskdeck.App

	reader iojson.FileReader[[]task.Draft]
}

// NewImportCmd creates a new import command.
func NewImportCmd(flags *Flags, app *taskdeck.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application.
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from a JSON array of drafts",
		UsageText: "taskdeck import [-f <file>]",
		Description: `Reads a JSON array of task drafts from the given file, or from stdin
when piped, and adds each one. Each draft has the fields title,
description, dueDate, and priority; ids and timestamps are assigned
at import time.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	drafts, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read import input: %w", err)
	}
	if len(drafts) == 0 {
		return fmt.Errorf("no drafts to import")
	}

	var (
		added      int
		persistErr error
	)
	for i, draft := range drafts {
		t, err := cmd.app.Tasks.Add(draft)
		if err != nil && !errors.Is(err, task.ErrNotPersisted) {
			return fmt.Errorf("import draft %d (%q): %w", i, draft.Title, err)
		}
		if err != nil {
			persistErr = err
		}

		added++
		_, _ = fmt.Fprintf(c.Root().Writer, "added %s %q\n", t.ID, t.Title)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "imported %d tasks\n", added)

	if persistErr != nil {
		return fmt.Errorf("tasks kept in memory only: %w", persistErr)
	}
	return nil
}
