package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// ShowCmd implements the taskdeck show command.
type ShowCmd struct {
	flags *Flags
	app   *taskdeck.App

	jsonOutput bool
}

// NewShowCmd creates a new show command.
func NewShowCmd(flags *Flags, app *taskdeck.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application.
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a single task in full",
		UsageText: "taskdeck show <id> [--json]",
		Description: `Shows every field of a task. The description is rendered as
markdown unless --json is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the raw task as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdeck show <id>")
	}

	t, err := cmd.app.Tasks.Get(c.Args().Get(0))
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, out, t)
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", styles.TextMutedStyle.Render("id:"), t.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", styles.TextMutedStyle.Render("status:"), styles.StatusGlyph(t.Status)+" "+string(t.Status)))
	b.WriteString(fmt.Sprintf("%s %s\n", styles.TextMutedStyle.Render("priority:"), styles.PriorityStyle(t.Priority).Render(string(t.Priority))))

	due := t.DueDate
	if t.Status != task.StatusCompleted && task.IsOverdue(t.DueDate, time.Now()) {
		due = styles.OverdueStyle.Render(due + " (overdue)")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", styles.TextMutedStyle.Render("due:"), due))
	b.WriteString(fmt.Sprintf("%s %s\n", styles.TextMutedStyle.Render("created:"), t.CreatedAt.Format(time.RFC3339)))

	if t.Description != "" {
		b.WriteString(cmd.renderDescription(t.Description))
	}

	_, _ = fmt.Fprintln(out, b.String())
	return nil
}

// renderDescription renders the markdown body, falling back to the raw
// text when the renderer fails.
func (cmd *ShowCmd) renderDescription(md string) string {
	style := "light"
	if cmd.app.Settings.DarkMode() {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "\n" + md + "\n"
	}

	rendered, err := r.Render(md)
	if err != nil {
		return "\n" + md + "\n"
	}
	return rendered
}
