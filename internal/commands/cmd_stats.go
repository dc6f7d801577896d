package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// StatsCmd implements the taskdeck stats command.
type StatsCmd struct {
	flags *Flags
	app   *taskdeck.App

	asJSON bool
}

// NewStatsCmd creates a new stats command.
func NewStatsCmd(flags *Flags, app *taskdeck.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application.
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate task counts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	summary := cmd.app.Tasks.Stats()

	if cmd.asJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().Writer, summary)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, renderStats(summary))
	return nil
}

// renderStats lays the summary out as a row of cards.
func renderStats(s task.Summary) string {
	cards := []string{
		statCard("Total", s.Total, styles.CardValueStyle),
		statCard("Pending", s.Pending, styles.WarningStyle),
		statCard("Completed", s.Completed, styles.SuccessStyle),
		statCard("Overdue", s.Overdue, styles.OverdueStyle),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label string, value int, valueStyle lipgloss.Style) string {
	body := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(fmt.Sprintf("%d", value)),
		styles.TextMutedStyle.Render(label),
	)
	return styles.CardStyle.Render(body)
}
