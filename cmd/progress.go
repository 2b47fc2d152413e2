package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"heic2jpg/internal/processor"
	"heic2jpg/internal/tui"
)

// startProgress consumes updates until the channel is closed and closes the
// returned channel when the display has finished. The bubbletea view starts
// with the first update, so prompts issued before any work begins still own
// the terminal. Without a terminal, or in verbose mode, plain lines are
// printed instead (verbose relies on the logger).
//
// In the interactive view ctrl+c is delivered as a key press, so it calls
// interrupt rather than raising SIGINT.
func startProgress(title string, verbose bool, interrupt func(), updates <-chan processor.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	interactive := !verbose && isatty.IsTerminal(os.Stdout.Fd())

	go func() {
		defer close(done)

		if !interactive {
			total, processed := 0, 0
			for u := range updates {
				total += u.TotalDelta
				processed += u.ProcessedDelta
				if !verbose && u.ProcessedDelta > 0 {
					fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", processed, total, u.Path)
				}
			}
			return
		}

		first, ok := <-updates
		if !ok {
			return
		}
		relay := make(chan processor.ProgressUpdate, 64)
		relay <- first

		program := tea.NewProgram(tui.NewModel(title, relay).WithInterrupt(interrupt))
		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		for u := range updates {
			select {
			case relay <- u:
			case <-uiDone:
				// The view is gone; keep draining so the producer never blocks.
			}
		}
		close(relay)
		<-uiDone
	}()

	return done
}
