package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sysmltool/internal/driver"
	"sysmltool/internal/ui"
)

type validateOutcome struct {
	batch *driver.Batch
}

// runValidateWithUI runs the batch behind a live progress view. The
// pipeline itself runs on its own goroutine; events feed the TUI until
// the batch completes and the channel closes.
func runValidateWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Batch, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan validateOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) {
			events <- ev
		}
		runner := driver.NewRunner(optsCopy)
		batch := runner.ValidateAll(ctx, files)
		outcomeCh <- validateOutcome{batch: batch}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	return outcome.batch, uiErr
}
