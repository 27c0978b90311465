package gui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/ziggurat/internal"
	"codeberg.org/snonux/ziggurat/internal/cli"
	"codeberg.org/snonux/ziggurat/internal/processor"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	inputEntry      *widget.Entry
	outputEntry     *widget.Entry
	targetEntry     *widget.Entry
	providerSelect  *widget.Select
	translateButton *ttwidget.Button
	progressBar     *widget.ProgressBarInfinite
	statusLabel     *widget.Label
	logViewer       *LogViewer

	// Configuration carried over from the command line
	flags *cli.Flags

	// Background processing
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// Run launches the GUI frontend and blocks until the window closes
func Run(flags *cli.Flags) error {
	a := New(flags)
	a.RunAndWait()
	return nil
}

// New creates a new GUI application
func New(flags *cli.Flags) *Application {
	if flags == nil {
		flags = cli.NewFlags()
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.ziggurat")

	a := &Application{
		app:    myApp,
		flags:  flags,
		ctx:    ctx,
		cancel: cancel,
	}

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Ziggurat v%s - Document Translator", internal.Version))
	a.window.Resize(fyne.NewSize(700, 500))

	a.inputEntry = widget.NewEntry()
	a.inputEntry.SetPlaceHolder("Input document (PDF or EPUB)...")
	a.inputEntry.SetText(a.flags.Input)
	inputBrowse := widget.NewButton("Browse...", a.onBrowseInput)

	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetPlaceHolder("Output document path...")
	a.outputEntry.SetText(a.flags.Output)
	outputBrowse := widget.NewButton("Browse...", a.onBrowseOutput)

	a.targetEntry = widget.NewEntry()
	a.targetEntry.SetPlaceHolder("Target language code (de, fr, ja, ...)")
	a.targetEntry.SetText(a.flags.Target)

	a.providerSelect = widget.NewSelect([]string{"google", "openai", "gemini"}, nil)
	a.providerSelect.SetSelected(a.flags.Provider)

	a.translateButton = ttwidget.NewButton("Translate", a.onTranslate)

	a.progressBar = widget.NewProgressBarInfinite()
	a.progressBar.Hide()

	a.statusLabel = widget.NewLabel("Ready")

	a.logViewer = NewLogViewer()

	form := container.New(
		layout.NewFormLayout(),
		widget.NewLabel("Input:"), container.NewBorder(nil, nil, nil, inputBrowse, a.inputEntry),
		widget.NewLabel("Output:"), container.NewBorder(nil, nil, nil, outputBrowse, a.outputEntry),
		widget.NewLabel("Language:"), a.targetEntry,
		widget.NewLabel("Provider:"), a.providerSelect,
	)

	content := container.NewBorder(
		container.NewVBox(
			form,
			container.NewBorder(nil, nil, nil, a.translateButton, a.statusLabel),
			a.progressBar,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		a.logViewer,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.translateButton.SetToolTip("Translate the input document (Enter)")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})
}

// RunAndWait shows the window and runs the event loop
func (a *Application) RunAndWait() {
	a.window.ShowAndRun()
}

func (a *Application) onBrowseInput() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		a.inputEntry.SetText(reader.URI().Path())
		a.suggestOutputPath()
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".epub"}))
	fd.Show()
}

func (a *Application) onBrowseOutput() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		a.outputEntry.SetText(writer.URI().Path())
	}, a.window)
	fd.Show()
}

// suggestOutputPath fills the output entry with input-translated.ext when
// the user has not chosen anything yet
func (a *Application) suggestOutputPath() {
	if a.outputEntry.Text != "" {
		return
	}
	input := a.inputEntry.Text
	ext := filepath.Ext(input)
	a.outputEntry.SetText(strings.TrimSuffix(input, ext) + "-translated" + ext)
}

// onTranslate validates the form and starts a translation run
func (a *Application) onTranslate() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.mu.Unlock()

	input := strings.TrimSpace(a.inputEntry.Text)
	output := strings.TrimSpace(a.outputEntry.Text)
	target := strings.TrimSpace(a.targetEntry.Text)

	if input == "" || output == "" || target == "" {
		a.setRunning(false)
		dialog.ShowError(fmt.Errorf("input, output and target language are all required"), a.window)
		return
	}

	flags := *a.flags
	flags.Input = input
	flags.Output = output
	flags.Target = target
	flags.Provider = a.providerSelect.Selected
	flags.Verbose = true

	a.translateButton.Disable()
	a.progressBar.Show()
	a.statusLabel.SetText(fmt.Sprintf("Translating %s to %s...", filepath.Base(input), target))
	a.logViewer.Capture()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		err := a.translateDocument(&flags)

		fyne.Do(func() {
			a.logViewer.Release()
			a.progressBar.Hide()
			a.translateButton.Enable()
			a.setRunning(false)

			if err != nil {
				a.statusLabel.SetText("Translation failed")
				dialog.ShowError(err, a.window)
				return
			}
			a.statusLabel.SetText("Done")
			dialog.ShowInformation("Translation complete",
				fmt.Sprintf("Translated document saved to:\n%s", output), a.window)
		})
	}()
}

func (a *Application) translateDocument(flags *cli.Flags) error {
	proc, err := processor.New(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	return proc.Run(a.ctx)
}

func (a *Application) setRunning(running bool) {
	a.mu.Lock()
	a.running = running
	a.mu.Unlock()
}
