package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// ToggleCmd implements the taskdeck toggle command.
type ToggleCmd struct {
	flags *Flags
	app   *taskdeck.App
}

// NewToggleCmd creates a new toggle command.
func NewToggleCmd(flags *Flags, app *taskdeck.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application.
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Usage:     "Flip a task between pending and completed",
		UsageText: "taskdeck toggle <id> [<id>...]",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdeck toggle <id>")
	}

	var persistErr error
	for _, id := range c.Args().Slice() {
		t, err := cmd.app.Tasks.Toggle(id)
		if err != nil && !errors.Is(err, task.ErrNotPersisted) {
			return fmt.Errorf("toggle task %s: %w", id, err)
		}
		if err != nil {
			persistErr = err
		}

		_, _ = fmt.Fprintf(c.Root().Writer, "%s is now %s\n", t.ID, t.Status)
	}

	if persistErr != nil {
		return fmt.Errorf("changes kept in memory only: %w", persistErr)
	}
	return nil
}
