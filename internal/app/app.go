package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/api"
	"github.com/atomicstack/evsched/internal/form"
	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	BaseURL      string
	Width        int
	Height       int
	ShowFooter   bool
	Debounce     time.Duration
	ToastTimeout time.Duration
	Timeout      time.Duration
}

// Build assembles the console model and its shared collaborators.
func Build(ctx context.Context, cfg Config) (*ui.Model, error) {
	toasts := notify.New(notify.Options{AutoDismiss: cfg.ToastTimeout})
	client, err := api.New(api.Options{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		Notifier: toasts,
	})
	if err != nil {
		toasts.Close()
		return nil, fmt.Errorf("build api client: %w", err)
	}
	deps := ui.Deps{
		Client: client,
		Toasts: toasts,
		Forms:  form.NewController(toasts),
	}
	return ui.NewModel(deps, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Debounce:   cfg.Debounce,
		Context:    ctx,
	}), nil
}

// Run bootstraps and executes the Bubble Tea program. A page the user chose
// to open is printed to out once the terminal is restored.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	model, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if url := model.ExitURL(); url != "" {
		fmt.Fprintln(out, url)
	}
	events.App.Stop("exit")
	return nil
}
