package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/core/validate"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// AddCmd implements the taskdeck add command.
type AddCmd struct {
	flags *Flags
	app   *taskdeck.App

	title       string
	description string
	due         string
	priority    string
}

// NewAddCmd creates a new add command.
func NewAddCmd(flags *Flags, app *taskdeck.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		UsageText: "taskdeck add [--title <title>] [--description <desc>] [--due <date>] [--priority <p>]",
		Description: `Adds a task to the list. With no --title flag an interactive form
opens instead.

Examples:
  taskdeck add --title "Water the plants"
  taskdeck add -t "File taxes" --due 2025-04-15 -p high
  taskdeck add                          # interactive form`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "optional description (markdown allowed)",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date as YYYY-MM-DD (defaults to tomorrow)",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high)",
				Destination: &cmd.priority,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.priority == "" {
		cmd.priority = string(cmd.app.Config.DefaultPriority())
	}
	if cmd.due == "" {
		cmd.due = time.Now().AddDate(0, 0, cmd.app.Config.Defaults.DueInDays).Format(task.DateLayout)
	}

	if cmd.title == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	if err := validate.DueDate(cmd.due); err != nil {
		return err
	}

	created, err := cmd.app.Tasks.Add(task.Draft{
		Title:       cmd.title,
		Description: cmd.description,
		DueDate:     cmd.due,
		Priority:    task.Priority(cmd.priority),
	})
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return fmt.Errorf("add task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "added %s\n", created.ID)

	if err != nil {
		return fmt.Errorf("task kept in memory only: %w", err)
	}
	return nil
}

func (cmd *AddCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&cmd.title),
			huh.NewText().
				Title("Description").
				Description("Optional, markdown allowed").
				Value(&cmd.description),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD").
				Validate(validate.DueDate).
				Value(&cmd.due),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(task.PriorityLow)),
					huh.NewOption("Medium", string(task.PriorityMedium)),
					huh.NewOption("High", string(task.PriorityHigh)),
				).
				Value(&cmd.priority),
		),
	).Run()
}
