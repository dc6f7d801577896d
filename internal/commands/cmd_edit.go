package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/core/validate"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// EditCmd implements the taskdeck edit command.
type EditCmd struct {
	flags *Flags
	app   *taskdeck.App

	title       string
	description string
	due         string
	priority    string

	titleSet       bool
	descriptionSet bool
	dueSet         bool
	prioritySet    bool
}

// NewEditCmd creates a new edit command.
func NewEditCmd(flags *Flags, app *taskdeck.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit fields of an existing task",
		UsageText: "taskdeck edit <id> [--title <t>] [--description <d>] [--due <date>] [--priority <p>]",
		Description: `Edits a task in place. Only the given flags change; everything else
is preserved.

Examples:
  taskdeck edit k3f9x --title "Water the plants twice"
  taskdeck edit k3f9x --due 2025-06-01 -p low`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "new title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "new description",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "new due date as YYYY-MM-DD",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority (low, medium, high)",
				Destination: &cmd.priority,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdeck edit <id>")
	}
	id := c.Args().Get(0)

	cmd.titleSet = c.IsSet("title")
	cmd.descriptionSet = c.IsSet("description")
	cmd.dueSet = c.IsSet("due")
	cmd.prioritySet = c.IsSet("priority")

	patch, err := cmd.buildPatch()
	if err != nil {
		return err
	}
	if patch.IsZero() {
		return fmt.Errorf("nothing to change: pass at least one of --title, --description, --due, --priority")
	}

	updated, err := cmd.app.Tasks.Update(id, patch)
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return fmt.Errorf("edit task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "updated %s\n", updated.ID)

	if err != nil {
		return fmt.Errorf("change kept in memory only: %w", err)
	}
	return nil
}

// buildPatch converts the set flags into a task.Patch.
func (cmd *EditCmd) buildPatch() (task.Patch, error) {
	var patch task.Patch

	if cmd.titleSet {
		if err := validate.TitleField("title", cmd.title); err != nil {
			return task.Patch{}, err
		}
		patch.Title = &cmd.title
	}
	if cmd.descriptionSet {
		patch.Description = &cmd.description
	}
	if cmd.dueSet {
		if err := validate.DueDateField("due", cmd.due); err != nil {
			return task.Patch{}, err
		}
		patch.DueDate = &cmd.due
	}
	if cmd.prioritySet {
		p := task.Priority(cmd.priority)
		if !p.IsValid() {
			return task.Patch{}, fmt.Errorf("invalid priority %q: must be one of low, medium, high", cmd.priority)
		}
		patch.Priority = &p
	}

	return patch, nil
}
