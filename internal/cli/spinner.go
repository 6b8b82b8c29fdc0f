package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// spinner redraws one status line until stopped or until its context ends.
type spinner struct {
	w      io.Writer
	msg    string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// startSpinner starts animating msg on w right away.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, msg: msg, cancel: cancel, done: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprint(s.w, "\r"+strings.Repeat(" ", len([]rune(s.msg))+2)+"\r")
			return
		case <-tick.C:
			fmt.Fprint(s.w, spinnerLine(i, s.msg))
		}
	}
}

// spinnerLine renders frame i, returning the cursor to column 0 first.
func spinnerLine(i int, msg string) string {
	frame := string(spinnerFrames[i%len(spinnerFrames)])
	return "\r" + styleSpinner.Render(frame) + " " + StyleDim.Render(msg)
}

// stop clears the line and waits for the animation to exit. Repeated calls
// are no-ops.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// fail stops the spinner and leaves a failure line in its place.
func (s *spinner) fail(msg string) {
	s.stop()
	newUI(s.w).failure("%s", msg)
}
