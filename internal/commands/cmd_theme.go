package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/taskdeck"
)

// ThemeCmd implements the taskdeck theme command.
type ThemeCmd struct {
	flags *Flags
	app   *taskdeck.App
}

// NewThemeCmd creates a new theme command.
func NewThemeCmd(flags *Flags, app *taskdeck.App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command to the application.
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the color theme",
		UsageText: "taskdeck theme [dark|light|toggle]",
		Description: `With no argument, prints the active theme. The preference persists
across runs.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ThemeCmd) run(ctx context.Context, c *cli.Command) error {
	current := cmd.app.Settings.DarkMode()

	if c.NArg() == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, themeName(current))
		return nil
	}

	var dark bool
	switch arg := c.Args().Get(0); arg {
	case "dark":
		dark = true
	case "light":
		dark = false
	case "toggle":
		dark = !current
	default:
		return fmt.Errorf("unknown theme %q: must be dark, light, or toggle", arg)
	}

	if err := cmd.app.Settings.SetDarkMode(dark); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "theme set to %s\n", themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
