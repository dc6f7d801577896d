package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// LsCmd implements the taskdeck ls command.
type LsCmd struct {
	flags *Flags
	app   *taskdeck.App

	filter     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags, app *taskdeck.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "taskdeck ls [--filter <selection>] [--json]",
		Description: `Lists tasks newest first as a table, or as JSON lines with --json.

Selections: all, pending, completed, high, overdue.

Examples:
  taskdeck ls
  taskdeck ls --filter overdue
  taskdeck ls --filter high --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "selection to apply (all, pending, completed, high, overdue)",
				Value:       string(task.SelectionAll),
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	sel := task.Selection(cmd.filter)
	if !sel.IsValid() {
		return fmt.Errorf("invalid filter %q: must be one of all, pending, completed, high, overdue", cmd.filter)
	}

	tasks := cmd.app.Tasks.Filtered(sel)

	if len(tasks) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No tasks found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tPRI\tDUE\tTITLE")

	for _, t := range tasks {
		due := t.DueDate
		if t.Status != task.StatusCompleted && task.IsOverdue(t.DueDate, now) {
			due = styles.OverdueStyle.Render(due + " !")
		}

		title := t.Title
		if t.Status == task.StatusCompleted {
			title = styles.DoneStyle.Render(title)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			styles.StatusGlyph(t.Status),
			styles.PriorityStyle(t.Priority).Render(string(t.Priority)),
			due,
			title,
		)
	}

	return w.Flush()
}
