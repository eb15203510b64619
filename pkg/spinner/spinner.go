// Package spinner draws a braille progress animation on a terminal while a
// long step such as model training runs.
package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// DefaultInterval is the delay between frames.
const DefaultInterval = 80 * time.Millisecond

var frames = []string{
	"⣀⣀ ",
	"⣄⣀ ",
	"⣤⣀ ",
	"⣦⣄ ",
	"⣶⣤ ",
	"⣿⣦ ",
	"⣿⣷ ",
	"⣿⣿ ",
	"⣿⣿ ",
	"⣷⣿ ",
	"⣦⣿ ",
	"⣤⣷ ",
	"⣄⣦ ",
	"⣀⣤ ",
	"⣀⣄ ",
	"⣀⣀ ",
}

// Spinner holds the spinner state
type Spinner struct {
	out      io.Writer
	interval time.Duration
	index    int

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	message string
}

// New creates a spinner writing to out.
func New(out io.Writer) *Spinner {
	return &Spinner{out: out, interval: DefaultInterval}
}

// ForTerminal returns a spinner on f when f is a terminal and nil otherwise.
// All methods are no-ops on a nil Spinner.
func ForTerminal(f *os.File) *Spinner {
	if f == nil || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	return New(f)
}

// ForWriter is ForTerminal for writers that may be an *os.File.
func ForWriter(w io.Writer) *Spinner {
	if f, ok := w.(*os.File); ok {
		return ForTerminal(f)
	}
	return nil
}

// Update advances the spinner to the next frame and prints it.
func (s *Spinner) Update() {
	if s == nil {
		return
	}
	// Hide cursor
	fmt.Fprint(s.out, "\033[?25l")
	fmt.Fprintf(s.out, "\r%s%s", frames[s.index], s.message)

	s.index++
	if s.index >= len(frames) {
		s.index = 0
	}
}

// Start animates the spinner with message until Stop is called.
func (s *Spinner) Start(message string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}

	s.message = message
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Update()
	for {
		select {
		case <-stop:
			s.Cleanup()
			return
		case <-ticker.C:
			s.Update()
		}
	}
}

// Stop halts the animation and waits for the spinner to clear its line.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}

	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// Cleanup clears the spinner line and shows the cursor
func (s *Spinner) Cleanup() {
	if s == nil {
		return
	}
	fmt.Fprintf(s.out, "\r%*s\r", len(frames[0])+len(s.message), "")
	fmt.Fprint(s.out, "\033[?25h") // Show cursor
}
