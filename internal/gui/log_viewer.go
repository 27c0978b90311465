package gui

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer is a widget that displays the processor's progress output
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int

	// For capturing stdout/stderr during a run
	originalStdout *os.File
	originalStderr *os.File
	pipeWriter     *os.File
	done           chan struct{}
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: 1000, // Keep last 1000 messages
		messages:    make([]string, 0),
	}

	// Create log entry (read-only multiline)
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 180))
	v.scrollView.Direction = container.ScrollBoth

	v.container = container.NewBorder(
		widget.NewLabel("Progress:"),
		nil, nil, nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// AddMessage appends a message to the viewer
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	v.messages = append(v.messages, message)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[len(v.messages)-v.maxMessages:]
	}
	text := strings.Join(v.messages, "\n")
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText(text)
		v.scrollView.ScrollToBottom()
	})
}

// Capture redirects stdout and stderr into the viewer until Release is
// called. The processor reports progress with plain prints; this is what
// makes them visible in the window.
func (v *LogViewer) Capture() {
	r, w, err := os.Pipe()
	if err != nil {
		return
	}

	v.originalStdout = os.Stdout
	v.originalStderr = os.Stderr
	v.pipeWriter = w
	v.done = make(chan struct{})
	os.Stdout = w
	os.Stderr = w

	go func() {
		defer close(v.done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := scanner.Text()
			if line != "" {
				// Still useful on the terminal the GUI was
				// launched from
				v.originalStdout.WriteString(line + "\n")
				v.AddMessage(line)
			}
		}
	}()
}

// Release restores stdout and stderr
func (v *LogViewer) Release() {
	if v.pipeWriter == nil {
		return
	}

	os.Stdout = v.originalStdout
	os.Stderr = v.originalStderr
	v.pipeWriter.Close()
	<-v.done
	v.pipeWriter = nil
}
