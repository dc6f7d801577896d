package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// RmCmd implements the taskdeck rm command.
type RmCmd struct {
	flags *Flags
	app   *taskdeck.App
}

// NewRmCmd creates a new rm command.
func NewRmCmd(flags *Flags, app *taskdeck.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application.
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove", "delete"},
		Usage:     "Delete tasks by id",
		UsageText: "taskdeck rm <id> [<id>...]",
		Description: `Deletes the given tasks. Deleting an id that does not exist is not
an error, so rm is safe to retry.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdeck rm <id>")
	}

	var persistErr error
	for _, id := range c.Args().Slice() {
		err := cmd.app.Tasks.Remove(id)
		if err != nil && !errors.Is(err, task.ErrNotPersisted) {
			return fmt.Errorf("remove task %s: %w", id, err)
		}
		if err != nil {
			persistErr = err
		}

		_, _ = fmt.Fprintf(c.Root().Writer, "removed %s\n", id)
	}

	if persistErr != nil {
		return fmt.Errorf("changes kept in memory only: %w", persistErr)
	}
	return nil
}
