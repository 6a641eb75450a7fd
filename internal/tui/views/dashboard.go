package views

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/control"
	"github.com/Dallionking/goldsim/internal/tui/models"
)

// ---------------------------------------------------------------------------
// RunDashboard -- interactive full-screen TUI entry point
// ---------------------------------------------------------------------------

// RunOptions configures an interactive dashboard session.
type RunOptions struct {
	Model models.DashboardOptions

	// Handle is installed for the lifetime of the program so other code can
	// push end dates into it. May be nil.
	Handle *control.Handle

	// ControlFile, when set, is watched and its first line forwarded to
	// Handle on every write.
	ControlFile string

	Logger *zap.Logger
}

// RunDashboard launches the full-screen dashboard and blocks until the user
// quits. In-flight requests are cancelled on exit.
func RunDashboard(ctx context.Context, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Model.Context = ctx
	if opts.Model.Logger == nil {
		opts.Model.Logger = logger
	}

	model := models.NewDashboardModel(opts.Model)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	handle := opts.Handle
	if handle == nil && opts.ControlFile != "" {
		handle = control.NewHandle()
	}
	if handle != nil {
		handle.Install(func(date string) {
			p.Send(models.SetEndDateMsg{Date: date})
		})
		defer handle.Uninstall()
	}

	if opts.ControlFile != "" {
		w, err := control.NewFileWatcher(opts.ControlFile, handle, logger)
		if err != nil {
			// The dashboard works without it; only external updates are lost.
			logger.Warn("Control file watch disabled", zap.String("path", opts.ControlFile), zap.Error(err))
		} else {
			defer w.Close()
			go w.Run(ctx)
			logger.Info("Watching control file", zap.String("path", w.Path()))
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// RenderOnce -- non-interactive single-frame render
// ---------------------------------------------------------------------------

// RenderOnce fetches the current window synchronously and renders a single
// frame. A failed fetch is returned as the error; the frame still shows it.
func RenderOnce(ctx context.Context, opts models.DashboardOptions, width int) (string, error) {
	if width < 60 {
		width = 100
	}
	opts.Context = ctx

	next, _ := models.NewDashboardModel(opts).Update(tea.WindowSizeMsg{Width: width, Height: 60})
	m := next.(models.DashboardModel).Refresh()

	if msg := m.Loader().Err; msg != "" {
		return m.View(), errors.New(msg)
	}
	return m.View(), nil
}
