package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/logging"
	"github.com/colonyops/taskdeck/internal/core/notify"
	"github.com/colonyops/taskdeck/internal/taskdeck"
	"github.com/colonyops/taskdeck/internal/tui"
)

// TuiCmd runs the interactive dashboard. It is the default action when
// no subcommand is given.
type TuiCmd struct {
	flags *Flags
	app   *taskdeck.App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *taskdeck.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the dashboard requires a terminal; use 'taskdeck ls' for scripted output")
	}

	log := logging.Component("tui")
	log.Debug().Msg("dashboard starting")

	// Toasts for the dashboard come from the notification router, not
	// from direct prints, so every mutation path surfaces the same way.
	eventbus.NewNotificationRouter(cmd.app.Bus).Register()

	m := tui.New(tui.Deps{App: cmd.app})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Bridge bus events into the program loop. Subscriptions live for
	// the process lifetime, which for the default action is the
	// lifetime of the dashboard.
	cmd.app.Bus.SubscribeTasksChanged(func(eventbus.TasksChangedPayload) {
		p.Send(tui.TasksChangedMsg{})
	})
	cmd.app.Bus.SubscribeThemeChanged(func(pl eventbus.ThemeChangedPayload) {
		p.Send(tui.ThemeChangedMsg{Dark: pl.Dark})
	})
	cmd.app.Bus.SubscribeNotificationPublished(func(pl eventbus.NotificationPublishedPayload) {
		p.Send(tui.NotificationMsg{Notification: notify.Notification{
			Level:     pl.Level,
			Message:   pl.Message,
			CreatedAt: time.Now(),
		}})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}

	log.Debug().Msg("dashboard closed")
	return nil
}
